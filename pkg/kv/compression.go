package kv

import (
	"bytes"
	"encoding/gob"

	"github.com/DataDog/zstd"

	"lintang/mapview/pkg/feature"
)

func Encode(markers []feature.Marker) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := gob.NewEncoder(buf)
	err := enc.Encode(markers)
	return buf.Bytes(), err
}

func Decode(bb []byte) ([]feature.Marker, error) {
	var markers []feature.Marker
	dec := gob.NewDecoder(bytes.NewReader(bb))
	err := dec.Decode(&markers)
	return markers, err
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}

func CompressMarkers(markers []feature.Marker) ([]byte, error) {
	encoded, err := Encode(markers)
	if err != nil {
		return nil, err
	}
	return Compress(encoded)
}

func LoadMarkers(bb []byte) ([]feature.Marker, error) {
	decompressed, err := Decompress(bb)
	if err != nil {
		return nil, err
	}
	return Decode(decompressed)
}
