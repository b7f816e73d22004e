package resolving

import "strings"

// Sinônimos fixos, mapeados para a forma canônica usada nos dados.
// As listas vindas da configuração entram por cima, mapeando para si mesmas.
var platformSynonyms = map[string]string{
	"facebook": "Meta",
	"fb":       "Meta",
	"insta":    "Meta",
	"adwords":  "Google",
	"youtube":  "Google",
}

var countrySynonyms = map[string]string{
	"usa":     "US",
	"america": "US",
	"canada":  "CA",
	"brazil":  "BR",
	"brasil":  "BR",
	"mexico":  "MX",
}

var deviceTokens = map[string]string{
	"mobile":  "mobile",
	"desktop": "desktop",
	"tablet":  "tablet",
}

// Vocabulary conhece os valores canônicos de plataforma e país e seus
// sinônimos em linguagem natural
type Vocabulary struct {
	platforms map[string]string
	countries map[string]string
}

// NewVocabulary monta o vocabulário a partir das listas canônicas configuradas
func NewVocabulary(platforms, countries []string) *Vocabulary {
	v := &Vocabulary{
		platforms: make(map[string]string),
		countries: make(map[string]string),
	}

	for token, canonical := range platformSynonyms {
		v.platforms[token] = canonical
	}
	for _, platform := range platforms {
		v.platforms[strings.ToLower(platform)] = platform
	}

	for token, canonical := range countrySynonyms {
		v.countries[token] = canonical
	}
	for _, country := range countries {
		v.countries[strings.ToLower(country)] = country
	}

	return v
}

// PlatformIn retorna a primeira plataforma reconhecida nos tokens da pergunta
func (v *Vocabulary) PlatformIn(tokens []string) (string, bool) {
	return firstMatch(v.platforms, tokens)
}

// CountryIn retorna o primeiro país reconhecido nos tokens da pergunta
func (v *Vocabulary) CountryIn(tokens []string) (string, bool) {
	return firstMatch(v.countries, tokens)
}

// DeviceIn retorna o dispositivo só quando a pergunta menciona exatamente
// um; com dois ou mais a intenção é comparar dispositivos, não filtrar
func (v *Vocabulary) DeviceIn(tokens []string) (string, bool) {
	found := make(map[string]bool)
	for _, token := range tokens {
		if device, ok := deviceTokens[token]; ok {
			found[device] = true
		}
	}

	if len(found) != 1 {
		return "", false
	}
	for device := range found {
		return device, true
	}
	return "", false
}

func firstMatch(vocabulary map[string]string, tokens []string) (string, bool) {
	for _, token := range tokens {
		if canonical, ok := vocabulary[token]; ok {
			return canonical, true
		}
	}
	return "", false
}
