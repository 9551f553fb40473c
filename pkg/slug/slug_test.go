package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sucursales-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Azúcar Ledesma 1 kg":     "azucar-ledesma-1-kg",
		"  Ñoquis de papa!! ":     "noquis-de-papa",
		"Lavandina (2L) - Ayudín": "lavandina-2l-ayudin",
		"":                        "",
		"---":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), in)
	}
}
