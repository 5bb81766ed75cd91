// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/ippan/dlc/fixed"
)

// jsonNode and jsonTree mirror Node/Tree with stable field ordering and
// Fixed values serialized as their raw scaled integer, so canonical JSON
// encoding is byte-for-byte reproducible across targets.
type jsonNode struct {
	IsLeaf       bool  `json:"is_leaf"`
	FeatureIndex uint32 `json:"feature_index"`
	Threshold    int64  `json:"threshold"`
	Left         uint32 `json:"left"`
	Right        uint32 `json:"right"`
	LeafValue    int64  `json:"leaf_value"`
}

type jsonTree struct {
	Nodes []jsonNode `json:"nodes"`
}

type jsonEnsemble struct {
	Trees        []jsonTree `json:"trees"`
	LearningRate int64      `json:"learning_rate"`
	FeatureCount uint32     `json:"feature_count"`
	OutputScale  int64      `json:"output_scale"`
}

// EncodeJSON produces the canonical JSON encoding of e. json.Marshal on a
// struct always emits fields in declaration order with no map-iteration
// nondeterminism, which is what makes this encoding canonical.
func EncodeJSON(e Ensemble) ([]byte, error) {
	je := jsonEnsemble{
		LearningRate: e.LearningRate.Raw(),
		FeatureCount: e.FeatureCount,
		OutputScale:  e.OutputScale.Raw(),
	}
	je.Trees = make([]jsonTree, len(e.Trees))
	for i, tr := range e.Trees {
		jt := jsonTree{Nodes: make([]jsonNode, len(tr.Nodes))}
		for j, n := range tr.Nodes {
			jt.Nodes[j] = jsonNode{
				IsLeaf:       n.IsLeaf,
				FeatureIndex: n.FeatureIndex,
				Threshold:    n.Threshold.Raw(),
				Left:         n.Left,
				Right:        n.Right,
				LeafValue:    n.LeafValue.Raw(),
			}
		}
		je.Trees[i] = jt
	}
	return json.Marshal(je)
}

// DecodeJSON parses the canonical JSON encoding produced by EncodeJSON.
func DecodeJSON(data []byte) (Ensemble, error) {
	var je jsonEnsemble
	if err := json.Unmarshal(data, &je); err != nil {
		return Ensemble{}, fmt.Errorf("model: decode json: %w", err)
	}
	e := Ensemble{
		LearningRate: fixed.FromScaled(je.LearningRate),
		FeatureCount: je.FeatureCount,
		OutputScale:  fixed.FromScaled(je.OutputScale),
	}
	e.Trees = make([]Tree, len(je.Trees))
	for i, jt := range je.Trees {
		tr := Tree{Nodes: make([]Node, len(jt.Nodes))}
		for j, jn := range jt.Nodes {
			tr.Nodes[j] = Node{
				IsLeaf:       jn.IsLeaf,
				FeatureIndex: jn.FeatureIndex,
				Threshold:    fixed.FromScaled(jn.Threshold),
				Left:         jn.Left,
				Right:        jn.Right,
				LeafValue:    fixed.FromScaled(jn.LeafValue),
			}
		}
		e.Trees[i] = tr
	}
	return e, nil
}

// binaryMagic tags the canonical binary encoding.
var binaryMagic = [4]byte{'D', 'G', 'B', '1'}

// EncodeBinary produces the canonical fixed-width little-endian binary
// encoding of e, which MUST evaluate identically to EncodeJSON's output.
func EncodeBinary(e Ensemble) []byte {
	buf := make([]byte, 0, 4+8+4+8+4+len(e.Trees)*16)
	buf = append(buf, binaryMagic[:]...)
	buf = appendU64(buf, uint64(e.LearningRate.Raw()))
	buf = appendU32(buf, e.FeatureCount)
	buf = appendU64(buf, uint64(e.OutputScale.Raw()))
	buf = appendU32(buf, uint32(len(e.Trees)))
	for _, tr := range e.Trees {
		buf = appendU32(buf, uint32(len(tr.Nodes)))
		for _, n := range tr.Nodes {
			if n.IsLeaf {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
			buf = appendU32(buf, n.FeatureIndex)
			buf = appendU64(buf, uint64(n.Threshold.Raw()))
			buf = appendU32(buf, n.Left)
			buf = appendU32(buf, n.Right)
			buf = appendU64(buf, uint64(n.LeafValue.Raw()))
		}
	}
	return buf
}

// DecodeBinary parses the canonical binary encoding produced by
// EncodeBinary.
func DecodeBinary(data []byte) (Ensemble, error) {
	r := &byteReader{data: data}
	var magic [4]byte
	if !r.read(magic[:]) || magic != binaryMagic {
		return Ensemble{}, fmt.Errorf("model: decode binary: %w", ErrStructureInvalid)
	}
	learningRate, ok := r.readU64()
	if !ok {
		return Ensemble{}, ErrStructureInvalid
	}
	featureCount, ok := r.readU32()
	if !ok {
		return Ensemble{}, ErrStructureInvalid
	}
	outputScale, ok := r.readU64()
	if !ok {
		return Ensemble{}, ErrStructureInvalid
	}
	treeCount, ok := r.readU32()
	if !ok {
		return Ensemble{}, ErrStructureInvalid
	}
	e := Ensemble{
		LearningRate: fixed.FromScaled(int64(learningRate)),
		FeatureCount: featureCount,
		OutputScale:  fixed.FromScaled(int64(outputScale)),
		Trees:        make([]Tree, treeCount),
	}
	for i := range e.Trees {
		nodeCount, ok := r.readU32()
		if !ok {
			return Ensemble{}, ErrStructureInvalid
		}
		nodes := make([]Node, nodeCount)
		for j := range nodes {
			isLeafByte, ok := r.readByte()
			if !ok {
				return Ensemble{}, ErrStructureInvalid
			}
			featureIdx, ok := r.readU32()
			if !ok {
				return Ensemble{}, ErrStructureInvalid
			}
			threshold, ok := r.readU64()
			if !ok {
				return Ensemble{}, ErrStructureInvalid
			}
			left, ok := r.readU32()
			if !ok {
				return Ensemble{}, ErrStructureInvalid
			}
			right, ok := r.readU32()
			if !ok {
				return Ensemble{}, ErrStructureInvalid
			}
			leafValue, ok := r.readU64()
			if !ok {
				return Ensemble{}, ErrStructureInvalid
			}
			nodes[j] = Node{
				IsLeaf:       isLeafByte == 1,
				FeatureIndex: featureIdx,
				Threshold:    fixed.FromScaled(int64(threshold)),
				Left:         left,
				Right:        right,
				LeafValue:    fixed.FromScaled(int64(leafValue)),
			}
		}
		e.Trees[i] = Tree{Nodes: nodes}
	}
	if !r.eof() {
		return Ensemble{}, ErrStructureInvalid
	}
	return e, nil
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) read(dst []byte) bool {
	if len(r.data)-r.pos < len(dst) {
		return false
	}
	copy(dst, r.data[r.pos:])
	r.pos += len(dst)
	return true
}

func (r *byteReader) readByte() (byte, bool) {
	var b [1]byte
	if !r.read(b[:]) {
		return 0, false
	}
	return b[0], true
}

func (r *byteReader) readU32() (uint32, bool) {
	var b [4]byte
	if !r.read(b[:]) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[:]), true
}

func (r *byteReader) readU64() (uint64, bool) {
	var b [8]byte
	if !r.read(b[:]) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b[:]), true
}

func (r *byteReader) eof() bool { return r.pos == len(r.data) }
