package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	srv := New(":0", http.NotFoundHandler(), 0)
	assert.Equal(t, 2*time.Minute, srv.WriteTimeout)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)

	srv = New(":0", http.NotFoundHandler(), 95*time.Second)
	assert.Equal(t, 95*time.Second, srv.WriteTimeout)
}
