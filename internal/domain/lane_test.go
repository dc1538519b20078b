package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"accents", "São Paulo", "Sao Paulo"},
		{"case", "rio de janeiro", "RIO DE JANEIRO"},
		{"outer whitespace", "  Curitiba - PR ", "CURITIBA - PR"},
		{"inner whitespace", "Belo   Horizonte", "BELO HORIZONTE"},
		{"cedilla and tilde", "Florianópolis", "FLORIANOPOLIS"},
		{"mixed", " goiânia\tgo ", "GOIANIA GO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, NormalizeKey(tt.a), NormalizeKey(tt.b))
		})
	}
}

func TestNormalizeKeyValues(t *testing.T) {
	assert.Equal(t, "SAO PAULO", NormalizeKey("São Paulo"))
	assert.Equal(t, "", NormalizeKey(""))
	assert.Equal(t, "", NormalizeKey("   "))
	assert.Equal(t, NormalizeKey("Maceió"), NormalizeKey(NormalizeKey("Maceió")))
}

func TestNewLaneKey(t *testing.T) {
	k := NewLaneKey("São Paulo", " rio de janeiro")
	assert.Equal(t, LaneKey{Origin: "SAO PAULO", Destination: "RIO DE JANEIRO"}, k)
	assert.Equal(t, "SAO PAULO|RIO DE JANEIRO", k.String())
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"FROTA":          ModeFleet,
		" frota ":        ModeFleet,
		"Frota Própria":  ModeFleet,
		"AGREGADO":       ModeAggregated,
		"agregado":       ModeAggregated,
		"Terceiro":       ModeThirdParty,
		"":               ModeUnknown,
		"CABOTAGEM":      ModeUnknown,
		"frota  propria": ModeFleet,
	}

	for label, want := range tests {
		if got := ParseMode(label); got != want {
			t.Errorf("ParseMode(%q) = %s, want %s", label, got, want)
		}
	}
}
