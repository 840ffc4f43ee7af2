// Package i18n provides message printers for CLI output and the dev
// backend's error bodies.
package i18n

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is the fallback language
var DefaultLang = language.English

// SupportedLangs are the languages we support
var SupportedLangs = []language.Tag{
	language.English,
	language.Portuguese,
}

var matcher = language.NewMatcher(SupportedLangs)

// Message keys with translations.
const (
	MsgError          = "Error: %v\n"
	MsgNoData         = "No data available"
	MsgNotFound       = "%s %d not found"
	MsgInvalidID      = "invalid %s id %q"
	MsgResetHistory   = "Study history has been reset"
	MsgResetFull      = "System has been fully reset"
	MsgUsingMock      = "Using mock API implementation"
	MsgUsingLive      = "Using real API implementation"
	MsgLaunchOpenedAt = "Activity launched: %s\n"
	MsgNoRoute        = "no route for %s %s"
)

func init() {
	pt := language.Portuguese
	for key, msg := range map[string]string{
		MsgError:          "Erro: %v\n",
		MsgNoData:         "Nenhum dado disponível",
		MsgNotFound:       "%s %d não encontrado",
		MsgInvalidID:      "id de %s inválido %q",
		MsgResetHistory:   "O histórico de estudo foi reiniciado",
		MsgResetFull:      "O sistema foi totalmente reiniciado",
		MsgUsingMock:      "Usando a API simulada",
		MsgUsingLive:      "Usando a API real",
		MsgLaunchOpenedAt: "Atividade iniciada: %s\n",
		MsgNoRoute:        "nenhuma rota para %s %s",
	} {
		_ = message.SetString(pt, key, msg)
	}
}

type contextKey struct{}

// printerKey is the key used to store the printer in the context
var printerKey = contextKey{}

// MatchLanguage returns the best matching language for an Accept-Language
// header value.
func MatchLanguage(acceptLang string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLang)
	tag, _, _ := matcher.Match(tags...)
	return base(tag)
}

// NewPrinter returns a message printer for the given language
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// WithPrinter returns a new context with the printer injected
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey, p)
}

// GetPrinter returns the printer from the context, or a default one
func GetPrinter(ctx context.Context) *message.Printer {
	p, ok := ctx.Value(printerKey).(*message.Printer)
	if !ok {
		return message.NewPrinter(DefaultLang)
	}
	return p
}

// NewCLIPrinter returns a printer for the system's locale (from env vars)
func NewCLIPrinter() *message.Printer {
	return message.NewPrinter(LocaleFromEnv(os.Getenv))
}

// LocaleFromEnv resolves LC_ALL, then LANG, into a supported language.
func LocaleFromEnv(getenv func(string) string) language.Tag {
	lang := getenv("LC_ALL")
	if lang == "" {
		lang = getenv("LANG")
	}
	if lang == "" || lang == "C" || lang == "POSIX" {
		return DefaultLang
	}

	// en_US.UTF-8 -> en-US
	if i := strings.Index(lang, "."); i != -1 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")

	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLang
	}
	match, _, _ := matcher.Match(tag)
	return base(match)
}

// base strips the matcher's -u-rg extension so the tag finds the catalog
// entries registered for the bare language.
func base(tag language.Tag) language.Tag {
	b, _ := tag.Base()
	t, err := language.Compose(b)
	if err != nil {
		return DefaultLang
	}
	return t
}
