package perplex

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is one of the labels a user can pick for an analysis. Only the
// caption differs between kinds. They all run the same calculation.
type Kind int

const (
	Conditional Kind = iota
	Evolutionary
	Structural
	Functional
	Multiscale
	Markov
	Weighted
	Stochastic
	nKind
)

// ErrUnknownKind is returned by ParseKind for names it does not know.
var ErrUnknownKind = errors.New("unknown perplexity kind")

// StubNote is shown for kinds that have no calculation of their own.
const StubNote = "Not differentiated yet: values are plain positional perplexity."

var kindTab = [nKind]struct {
	short, title, caption string
}{
	Conditional:  {"conditional", "Conditional Perplexity", "Calculating context-dependent variability."},
	Evolutionary: {"evolutionary", "Evolutionary Perplexity", "Analyzing sequence dynamics over time."},
	Structural:   {"structural", "Structural Perplexity", "Considering 3D structure-dependent complexity."},
	Functional:   {"functional", "Functional Perplexity", "Correlating with functional outcomes."},
	Multiscale:   {"multiscale", "Multiscale Perplexity", "Analyzing complexity at different sequence scales."},
	Markov:       {"markov", "Markov-Based Perplexity", "Analyzing higher-order nucleotide dependencies."},
	Weighted:     {"weighted", "Weighted Perplexity", "Prioritizing functionally significant positions."},
	Stochastic:   {"stochastic", "Stochastic Perplexity", "Modeling variability due to genetic drift or mutations."},
}

// Kinds returns every kind, in the order they are offered to users.
func Kinds() []Kind {
	kk := make([]Kind, nKind)
	for i := range kk {
		kk[i] = Kind(i)
	}
	return kk
}

func (k Kind) valid() bool { return k >= 0 && k < nKind }

// String returns the title, such as "Markov-Based Perplexity".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTab[k].title
}

// Short returns the one word name used on the command line.
func (k Kind) Short() string {
	if !k.valid() {
		return ""
	}
	return kindTab[k].short
}

// Caption
func (k Kind) Caption() string {
	if !k.valid() {
		return ""
	}
	return kindTab[k].caption
}

// Implemented is false for the kinds that are only aliases of
// conditional perplexity.
func (k Kind) Implemented() bool { return k == Conditional }

// ParseKind accepts a short name or a full title, ignoring case.
// The empty string gives Conditional.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Conditional, nil
	}
	for i, kt := range kindTab {
		if strings.EqualFold(s, kt.short) || strings.EqualFold(s, kt.title) {
			return Kind(i), nil
		}
	}
	return Conditional, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindInfo is a kind as listed for users and other programs.
type KindInfo struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title" yaml:"title"`
	Caption     string `json:"caption" yaml:"caption"`
	Implemented bool   `json:"implemented" yaml:"implemented"`
}

// KindTable lists every kind.
func KindTable() []KindInfo {
	kk := Kinds()
	info := make([]KindInfo, len(kk))
	for i, k := range kk {
		info[i] = KindInfo{k.Short(), k.String(), k.Caption(), k.Implemented()}
	}
	return info
}
