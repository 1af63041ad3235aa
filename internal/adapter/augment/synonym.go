// Package augment paraphrases training texts by synonym substitution.
package augment

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
)

// DefaultProbability is the share of words considered for substitution
const DefaultProbability = 0.3

// DefaultSynonyms covers the vocabulary of exam requisitions
var DefaultSynonyms = map[string][]string{
	"exame":       {"procedimento", "avaliação"},
	"solicito":    {"peço", "requisito"},
	"realizar":    {"fazer", "efetuar"},
	"tomografia":  {"tc", "tomografia computadorizada"},
	"ressonância": {"rnm", "ressonância nuclear"},
	"ultrassom":   {"ultrassonografia", "usg", "ecografia"},
	"radiografia": {"rx", "raio x"},
	"raio":        {"rx"},
	"torax":       {"tórax"},
	"tórax":       {"torax"},
	"abdome":      {"abdômen", "abdomen"},
	"abdômen":     {"abdome"},
	"cranio":      {"crânio"},
	"crânio":      {"cranio"},
	"coluna":      {"espinha"},
	"joelho":      {"articulação do joelho"},
	"total":       {"completo", "integral"},
	"urgente":     {"prioritário", "imediato"},
	"paciente":    {"doente", "usuário"},
	"dor":         {"algia", "desconforto"},
	"direito":     {"dir"},
	"esquerdo":    {"esq"},
	"bilateral":   {"ambos os lados"},
	"contraste":   {"meio de contraste"},
}

// SynonymAugmenter replaces a share of known words with a random synonym
type SynonymAugmenter struct {
	synonyms    map[string][]string
	probability float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynonymAugmenter creates a seeded augmenter. A nil dictionary uses
// DefaultSynonyms; probability <= 0 uses DefaultProbability.
func NewSynonymAugmenter(synonyms map[string][]string, probability float64, seed uint64) *SynonymAugmenter {
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}
	if probability <= 0 {
		probability = DefaultProbability
	}
	return &SynonymAugmenter{
		synonyms:    synonyms,
		probability: probability,
		rng:         rand.New(rand.NewPCG(seed, seed)),
	}
}

// Augment returns text with ceil(p*words) substitutions, bounded by the
// number of words that have synonyms. Text without candidates is returned as is.
func (a *SynonymAugmenter) Augment(text string) (string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text, nil
	}

	var candidates []int
	for i, w := range words {
		if _, ok := a.synonyms[strings.ToLower(w)]; ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return text, nil
	}

	n := int(math.Ceil(a.probability * float64(len(words))))
	n = min(n, len(candidates))

	a.mu.Lock()
	defer a.mu.Unlock()

	a.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, idx := range candidates[:n] {
		options := a.synonyms[strings.ToLower(words[idx])]
		words[idx] = options[a.rng.IntN(len(options))]
	}

	return strings.Join(words, " "), nil
}
