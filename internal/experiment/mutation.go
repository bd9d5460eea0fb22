package experiment

import (
	"fmt"
	"math/rand/v2"
	"strings"

	apperrors "github.com/agbru/mcsim/internal/errors"
)

// MutationType classifies the effect of a point mutation on a codon.
type MutationType int

const (
	// Silent mutations leave the encoded amino acid unchanged.
	Silent MutationType = iota
	// Missense mutations change the amino acid.
	Missense
	// Nonsense mutations turn the codon into a stop codon.
	Nonsense
)

// MutationTypes lists every classification in display order.
var MutationTypes = []MutationType{Silent, Missense, Nonsense}

func (m MutationType) String() string {
	switch m {
	case Silent:
		return "silent"
	case Missense:
		return "missense"
	case Nonsense:
		return "nonsense"
	default:
		return fmt.Sprintf("MutationType(%d)", int(m))
	}
}

const (
	bases = "ACGU"
	stop  = '*'
)

// codonTable is the standard genetic code over RNA bases.
var codonTable = map[string]byte{
	"UUU": 'F', "UUC": 'F', "UUA": 'L', "UUG": 'L',
	"CUU": 'L', "CUC": 'L', "CUA": 'L', "CUG": 'L',
	"AUU": 'I', "AUC": 'I', "AUA": 'I', "AUG": 'M',
	"GUU": 'V', "GUC": 'V', "GUA": 'V', "GUG": 'V',
	"UCU": 'S', "UCC": 'S', "UCA": 'S', "UCG": 'S',
	"CCU": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACU": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCU": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"UAU": 'Y', "UAC": 'Y', "UAA": stop, "UAG": stop,
	"CAU": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAU": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAU": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"UGU": 'C', "UGC": 'C', "UGA": stop, "UGG": 'W',
	"CGU": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGU": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGU": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// Translate returns the one-letter amino acid for an RNA codon, '*' for a
// stop codon, and '?' for anything outside the table.
func Translate(codon string) byte {
	if aa, ok := codonTable[codon]; ok {
		return aa
	}
	return '?'
}

// Classify compares a codon before and after mutation.
func Classify(original, mutated string) MutationType {
	before, after := Translate(original), Translate(mutated)
	switch {
	case after == stop:
		return Nonsense
	case after != before:
		return Missense
	default:
		return Silent
	}
}

// SpikeMutation applies one random point mutation to a random codon of an
// RNA sequence and classifies it.
type SpikeMutation struct {
	codons []string
}

// NewSpikeMutation prepares the experiment for rna. The sequence is
// upper-cased and T is read as U; a trailing partial codon is ignored.
func NewSpikeMutation(rna string) (SpikeMutation, error) {
	seq := NormalizeRNA(rna)
	n := len(seq) / 3
	if n == 0 {
		return SpikeMutation{}, apperrors.NewConfigError("sequence must contain at least one complete codon")
	}
	codons := make([]string, n)
	for i := range codons {
		codons[i] = seq[3*i : 3*i+3]
	}
	return SpikeMutation{codons: codons}, nil
}

// Codons returns the number of complete codons in the sequence.
func (s SpikeMutation) Codons() int { return len(s.codons) }

// Produce mutates one base of one codon to a different base.
func (s SpikeMutation) Produce(rng *rand.Rand) (MutationType, error) {
	original := s.codons[rng.IntN(len(s.codons))]
	codon := []byte(original)
	pos := rng.IntN(3)
	replacement := codon[pos]
	for replacement == codon[pos] {
		replacement = bases[rng.IntN(len(bases))]
	}
	codon[pos] = replacement
	return Classify(original, string(codon)), nil
}

// NormalizeRNA upper-cases a nucleotide sequence and maps T to U.
func NormalizeRNA(seq string) string {
	return strings.ReplaceAll(strings.ToUpper(seq), "T", "U")
}
