package svgo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spritz/internal/adapters/svgo"
)

func TestShortID(t *testing.T) {
	tests := map[int]string{
		0:   "a",
		25:  "z",
		26:  "aa",
		27:  "ab",
		701: "zz",
		702: "aaa",
	}
	for n, want := range tests {
		assert.Equal(t, want, svgo.ShortID(n), "n=%d", n)
	}
}
