package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlain(t *testing.T) {
	txt := Plain("Morning stretch")
	assert.Equal(t, "Morning stretch", txt.Resolve("fr-FR", DefaultLanguage))
}

func TestResolveLocalized(t *testing.T) {
	txt := Localized(map[string]string{
		"en-US": "Drink water",
		"fr-FR": "Boire de l'eau",
	})

	assert.Equal(t, "Boire de l'eau", txt.Resolve("fr-FR", DefaultLanguage))
	assert.Equal(t, "Drink water", txt.Resolve("en-US", DefaultLanguage))

	// Unknown locale falls back to the default language.
	assert.Equal(t, "Drink water", txt.Resolve("de-DE", DefaultLanguage))
}

func TestResolveClosestMatch(t *testing.T) {
	txt := Localized(map[string]string{
		"en-US": "Walk",
		"es-ES": "Caminar",
	})

	// A bare language tag should pick up the regional entry.
	assert.Equal(t, "Caminar", txt.Resolve("es", DefaultLanguage))
	assert.Equal(t, "Walk", txt.Resolve("en-GB", DefaultLanguage))
}

func TestUnmarshalBothShapes(t *testing.T) {
	var plain Text
	require.NoError(t, json.Unmarshal([]byte(`"Rest day"`), &plain))
	assert.False(t, plain.IsLocalized())
	assert.Equal(t, "Rest day", plain.Resolve("en-US", DefaultLanguage))

	var localized Text
	require.NoError(t, json.Unmarshal([]byte(`{"en-US":"Squats","fr-FR":"Squats"}`), &localized))
	assert.True(t, localized.IsLocalized())

	var bad Text
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestMarshalRoundTrip(t *testing.T) {
	txt := Localized(map[string]string{"en-US": "Plank"})
	data, err := json.Marshal(txt)
	require.NoError(t, err)

	var back Text
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Plank", back.Resolve("en-US", DefaultLanguage))
}
