package main

import (
	"encoding/binary"
	"errors"

	"github.com/klauspost/reedsolomon"
)

const (
	fecDataShards   = 4
	fecParityShards = 2
)

// fecEncode prepends an 8-byte length header and splits data into
// data+parity shards, concatenating them back into a single byte stream fit
// for embedding. Mirrors the length-prefix-then-split/encode shape used for
// reed-solomon framing elsewhere in the steganography ecosystem.
func fecEncode(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(fecDataShards, fecParityShards)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 8)
	binary.BigEndian.PutUint64(header, uint64(len(data)))
	payload := append(header, data...)

	shards, err := enc.Split(payload)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	var out []byte
	for _, shard := range shards {
		out = append(out, shard...)
	}
	return out, nil
}

// fecDecode reconstructs any corrupted/missing shards and returns the
// original payload, trimmed back to its recorded length.
func fecDecode(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(fecDataShards, fecParityShards)
	if err != nil {
		return nil, err
	}

	shards, err := enc.Split(data)
	if err != nil {
		return nil, err
	}
	if ok, _ := enc.Verify(shards); !ok {
		if err := enc.Reconstruct(shards); err != nil {
			return nil, err
		}
	}

	var joined []byte
	for i := 0; i < fecDataShards; i++ {
		joined = append(joined, shards[i]...)
	}

	if len(joined) < 8 {
		return nil, errors.New("fec: reconstructed data too short for length header")
	}
	length := binary.BigEndian.Uint64(joined[:8])
	payload := joined[8:]
	if uint64(len(payload)) < length {
		return nil, errors.New("fec: recorded length exceeds reconstructed payload")
	}
	return payload[:length], nil
}
