package redisbus

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recorder struct{ sources []string }

func (r *recorder) Invalidate(source string) { r.sources = append(r.sources, source) }

func TestInvalidator_IgnoraAvisosPropios(t *testing.T) {
	rec := &recorder{}
	inv := NewInvalidator(nil, "agenda:hierarchy", rec, zerolog.Nop())

	inv.handle(inv.instanceID)
	assert.Empty(t, rec.sources)

	inv.handle("otra-instancia")
	assert.Equal(t, []string{"remote"}, rec.sources)
}
