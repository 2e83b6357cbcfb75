/*
Package nucleotide is the bidirectional bridge between RNA sequence strings
and the integer/one-hot tensor encodings the chromosome codec and the TE
oracle batch driver operate on. The hot path here is BatchEncode: it must
run at memory-bandwidth speed, so it writes directly into one pre-allocated
flat []float32 buffer via a 256-entry ASCII lookup table rather than walking
each sequence through map lookups.
*/
package nucleotide

import (
	"fmt"

	"github.com/avantgene/utrforge/sequence"
)

// Tensor dimensions fixed by the oracle's trained input shape (spec.md §3).
const (
	// Channels is the number of one-hot/marker channels per position.
	Channels = 5
	// Width is the total number of columns in the oracle input tensor.
	Width = 13318
	// UTR5Window is the number of columns reserved for the 5′ UTR,
	// right-aligned against the body.
	UTR5Window = 1381
	// BodyWindow is the number of columns reserved for Kozak+CDS+3′UTR.
	BodyWindow = Width - UTR5Window // 11937
)

// channelTable maps an ASCII byte to its one-hot channel index. Bytes with
// no RNA meaning map to 0 but are never written because the caller checks
// validity with channelValid first.
var channelTable [256]uint8
var channelValid [256]bool

func init() {
	set := func(b byte, channel uint8) {
		channelTable[b] = channel
		channelValid[b] = true
	}
	set('A', 0)
	set('a', 0)
	set('T', 1)
	set('t', 1)
	set('U', 1)
	set('u', 1)
	set('C', 2)
	set('c', 2)
	set('G', 3)
	set('g', 3)
}

// Batch is a (N, Channels, Width) float32 tensor stored as one flat,
// contiguous slice so it can be handed to an accelerator transfer without a
// per-row copy. Valid reports, per sequence, whether encoding succeeded;
// invalid rows are left all-zero.
type Batch struct {
	Data  []float32
	N     int
	Valid []bool
}

// index returns the flat offset of tensor element (n, channel, col).
func (b *Batch) index(n int, channel int, col int) int {
	return n*Channels*Width + channel*Width + col
}

// At returns the value at (n, channel, col).
func (b *Batch) At(n, channel, col int) float32 {
	return b.Data[b.index(n, channel, col)]
}

// NewBatch allocates a zeroed tensor for n sequences.
func NewBatch(n int) *Batch {
	return &Batch{
		Data:  make([]float32, n*Channels*Width),
		N:     n,
		Valid: make([]bool, n),
	}
}

// EncodeBatch assembles the oracle input tensor for a slice of mRNA
// records. Each mRNA contributes one row: the 5′ UTR occupies
// [Width-BodyWindow-len(utr5), Width-BodyWindow), right-aligned so the
// Kozak/CDS/UTR3 body always starts at the same column; the body
// (Kozak+CDS+UTR3) occupies [Width-BodyWindow, Width-BodyWindow+bodyLen).
// A sequence whose UTR5 exceeds UTR5Window or whose body exceeds
// BodyWindow is marked invalid and its row is left all-zero (spec.md
// §4.1).
func EncodeBatch(mrnas []sequence.MRNA) *Batch {
	batch := NewBatch(len(mrnas))
	for i, mrna := range mrnas {
		encodeRow(batch, i, mrna)
	}
	return batch
}

// AlphabetToChannel maps an alphabet.RNA code (0=A, 1=C, 2=G, 3=U, the
// order the chromosome row encoding uses) to its one-hot channel index in
// this package's tensor layout (0=A, 1=T/U, 2=C, 3=G).
var AlphabetToChannel = [4]int{0, 2, 3, 1}

// EncodeSoftUTR5Batch encodes a single sequence whose 5′ UTR is given as a
// per-position probability distribution over {A,C,G,U} (in alphabet.RNA
// order) rather than a discrete string, and whose Kozak+CDS+3′UTR body is
// a fixed, fully-formed string. This is the tensor gradient-ascent seed
// generation back-propagates through: each step's softmaxed logits are
// spliced in here before a forward pass (spec.md §4.9).
func EncodeSoftUTR5Batch(utr5Probs [][4]float64, cds, utr3 string) (*Batch, error) {
	body := sequence.Kozak + cds + utr3
	if len(utr5Probs) > UTR5Window || len(body) > BodyWindow {
		return nil, fmt.Errorf("nucleotide: soft utr5 (%d) or body (%d) exceeds tensor window", len(utr5Probs), len(body))
	}

	batch := NewBatch(1)
	bodyStart := Width - BodyWindow
	utr5Start := bodyStart - len(utr5Probs)

	for i, probs := range utr5Probs {
		for alphabetCode, p := range probs {
			channel := AlphabetToChannel[alphabetCode]
			batch.Data[batch.index(0, channel, utr5Start+i)] = float32(p)
		}
	}

	for i := 0; i < len(body); i++ {
		base := body[i]
		if !channelValid[base] {
			return nil, fmt.Errorf("nucleotide: body contains non-RNA byte %q at position %d", base, i)
		}
		batch.Data[batch.index(0, int(channelTable[base]), bodyStart+i)] = 1
	}

	cdsStart := bodyStart + len(sequence.Kozak)
	for k := 0; k*3 < len(cds); k++ {
		batch.Data[batch.index(0, 4, cdsStart+3*k)] = 1
	}

	batch.Valid[0] = true
	return batch, nil
}

func encodeRow(batch *Batch, row int, mrna sequence.MRNA) {
	utr5 := mrna.UTR5()
	body := sequence.Kozak + mrna.CDS() + mrna.UTR3()

	if len(utr5) > UTR5Window || len(body) > BodyWindow {
		batch.Valid[row] = false
		return
	}

	bodyStart := Width - BodyWindow
	utr5Start := bodyStart - len(utr5)

	for i := 0; i < len(utr5); i++ {
		base := utr5[i]
		if !channelValid[base] {
			batch.Valid[row] = false
			return
		}
		batch.Data[batch.index(row, int(channelTable[base]), utr5Start+i)] = 1
	}

	for i := 0; i < len(body); i++ {
		base := body[i]
		if !channelValid[base] {
			batch.Valid[row] = false
			return
		}
		batch.Data[batch.index(row, int(channelTable[base]), bodyStart+i)] = 1
	}

	cdsStart := bodyStart + len(sequence.Kozak)
	for k := 0; k*3 < len(mrna.CDS()); k++ {
		batch.Data[batch.index(row, 4, cdsStart+3*k)] = 1
	}

	batch.Valid[row] = true
}
