package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept   string
		expected language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"pt-BR,pt;q=0.9", language.Portuguese},
		{"fr-FR", language.English}, // Fallback
		{"", language.English},      // Empty
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected.String(), MatchLanguage(tt.accept).String(), "Accept: %s", tt.accept)
	}
}

func TestLocaleFromEnv(t *testing.T) {
	tests := []struct {
		lcAll, lang string
		expected    language.Tag
	}{
		{"", "", language.English},
		{"", "C", language.English},
		{"", "pt_PT.UTF-8", language.Portuguese},
		{"en_GB.UTF-8", "pt_BR.UTF-8", language.English},
		{"", "not a locale!", language.English},
	}

	for _, tt := range tests {
		env := map[string]string{"LC_ALL": tt.lcAll, "LANG": tt.lang}
		got := LocaleFromEnv(func(k string) string { return env[k] })
		assert.Equal(t, tt.expected.String(), got.String(), "LC_ALL=%q LANG=%q", tt.lcAll, tt.lang)
	}
}

func TestTranslations(t *testing.T) {
	pt := NewPrinter(language.Portuguese)
	assert.Equal(t, "Nenhum dado disponível", pt.Sprintf(MsgNoData))
	assert.Equal(t, "palavra 3 não encontrado", pt.Sprintf(MsgNotFound, "palavra", 3))

	en := NewPrinter(language.English)
	assert.Equal(t, "word 3 not found", en.Sprintf(MsgNotFound, "word", 3))
}

func TestGetPrinterDefault(t *testing.T) {
	p := GetPrinter(context.Background())
	assert.Equal(t, "No data available", p.Sprintf(MsgNoData))
}

func TestMiddleware(t *testing.T) {
	var got string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetPrinter(r.Context()).Sprintf(MsgNoData)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "pt")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Nenhum dado disponível", got)
}
