package sonicpc

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-sonic-pc/serialization"
)

// Byte encodings for the artifacts that cross a trust boundary: commitments
// and batch proofs. Group elements use the compressed 48-byte form, scalars
// the canonical 32-byte big-endian form. Optional fields carry a one-byte
// presence flag so the encodings stay self-describing.

const (
	flagAbsent  byte = 0
	flagPresent byte = 1
)

// Bytes encodes the commitment as a presence flag followed by the base
// element and, when present, the shifted element.
func (c *Commitment) Bytes() []byte {
	out := make([]byte, 0, 1+2*serialization.CompressedG1Size)
	if c.ShiftedComm == nil {
		out = append(out, flagAbsent)
	} else {
		out = append(out, flagPresent)
	}
	base := serialization.SerializeG1Point(c.Comm)
	out = append(out, base[:]...)
	if c.ShiftedComm != nil {
		shifted := serialization.SerializeG1Point(*c.ShiftedComm)
		out = append(out, shifted[:]...)
	}
	return out
}

// SetBytes decodes a commitment produced by Bytes. Both group elements are
// subgroup-checked.
func (c *Commitment) SetBytes(data []byte) error {
	if len(data) < 1+serialization.CompressedG1Size {
		return fmt.Errorf("%w: commitment encoding too short", ErrMalformedCommitment)
	}
	flag := data[0]
	data = data[1:]

	var raw serialization.G1Point
	copy(raw[:], data[:serialization.CompressedG1Size])
	comm, err := serialization.DeserializeG1Point(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedCommitment, err)
	}
	data = data[serialization.CompressedG1Size:]

	switch flag {
	case flagAbsent:
		if len(data) != 0 {
			return fmt.Errorf("%w: trailing bytes after commitment", ErrMalformedCommitment)
		}
		c.Comm = comm
		c.ShiftedComm = nil
	case flagPresent:
		if len(data) != serialization.CompressedG1Size {
			return fmt.Errorf("%w: shifted element has wrong length", ErrMalformedCommitment)
		}
		copy(raw[:], data)
		shifted, err := serialization.DeserializeG1Point(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedCommitment, err)
		}
		c.Comm = comm
		c.ShiftedComm = &shifted
	default:
		return fmt.Errorf("%w: unknown presence flag %d", ErrMalformedCommitment, flag)
	}
	return nil
}

// Bytes encodes the proof as a big-endian witness count followed by each
// witness and its optional blinding evaluation.
func (p *BatchProof) Bytes() []byte {
	size := 4
	for i := range p.Proofs {
		size += serialization.CompressedG1Size + 1
		if p.Proofs[i].RandomV != nil {
			size += serialization.ScalarSize
		}
	}

	out := make([]byte, 0, size)
	out = binary.BigEndian.AppendUint32(out, uint32(len(p.Proofs)))
	for i := range p.Proofs {
		w := serialization.SerializeG1Point(p.Proofs[i].W)
		out = append(out, w[:]...)
		if p.Proofs[i].RandomV == nil {
			out = append(out, flagAbsent)
			continue
		}
		out = append(out, flagPresent)
		v := serialization.SerializeScalar(*p.Proofs[i].RandomV)
		out = append(out, v[:]...)
	}
	return out
}

// SetBytes decodes a proof produced by Bytes. Witnesses are subgroup-checked
// and blinding evaluations must be canonical.
func (p *BatchProof) SetBytes(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("proof encoding too short")
	}
	count := binary.BigEndian.Uint32(data)
	data = data[4:]

	proofs := make([]OpeningProof, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < serialization.CompressedG1Size+1 {
			return fmt.Errorf("proof encoding truncated at witness %d", i)
		}
		var raw serialization.G1Point
		copy(raw[:], data[:serialization.CompressedG1Size])
		w, err := serialization.DeserializeG1Point(raw)
		if err != nil {
			return fmt.Errorf("witness %d: %v", i, err)
		}
		data = data[serialization.CompressedG1Size:]

		flag := data[0]
		data = data[1:]

		var randomV *fr.Element
		switch flag {
		case flagAbsent:
		case flagPresent:
			if len(data) < serialization.ScalarSize {
				return fmt.Errorf("proof encoding truncated at witness %d", i)
			}
			var rawScalar serialization.Scalar
			copy(rawScalar[:], data[:serialization.ScalarSize])
			v, err := serialization.DeserializeScalar(rawScalar)
			if err != nil {
				return fmt.Errorf("witness %d: %v", i, err)
			}
			randomV = &v
			data = data[serialization.ScalarSize:]
		default:
			return fmt.Errorf("witness %d: unknown presence flag %d", i, flag)
		}

		proofs = append(proofs, OpeningProof{W: w, RandomV: randomV})
	}
	if len(data) != 0 {
		return fmt.Errorf("trailing bytes after proof")
	}

	p.Proofs = proofs
	return nil
}

func (p *BatchLCProof) Bytes() []byte {
	return p.Proof.Bytes()
}

func (p *BatchLCProof) SetBytes(data []byte) error {
	return p.Proof.SetBytes(data)
}
