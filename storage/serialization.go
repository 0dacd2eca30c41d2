// Copyright 2025 The Finchly Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"time"

	"github.com/chrismlittle123/finchly/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Link values are serialized with hand-written MUS serializers: the
// record is a single flat struct, so field-by-field composition of the
// mus-go primitives keeps the wire format explicit without a codegen
// step. Field order is part of the format and must not change.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	return core.ID(v), err
}

// MarshalLink serializes a Link to bytes.
func MarshalLink(link *core.Link) []byte {
	buf := make([]byte, sizeLink(link))
	n := varint.Uint64.Marshal(uint64(link.Id), buf)
	n += ord.String.Marshal(link.URL, buf[n:])
	n += ord.String.Marshal(link.Title, buf[n:])
	n += ord.String.Marshal(link.Description, buf[n:])
	n += ord.String.Marshal(link.Summary, buf[n:])
	n += marshalStrings(link.Tags, buf[n:])
	n += ord.String.Marshal(link.ImageURL, buf[n:])
	n += ord.String.Marshal(link.RawContent, buf[n:])
	n += varint.Uint64.Marshal(uint64(link.Source), buf[n:])
	n += marshalVector(link.Vector, buf[n:])
	n += ord.String.Marshal(link.ChannelID, buf[n:])
	n += ord.String.Marshal(link.UserID, buf[n:])
	n += ord.String.Marshal(link.MessageTS, buf[n:])
	n += marshalTime(link.EnrichedAt, buf[n:])
	n += marshalTime(link.CreatedAt, buf[n:])
	marshalTime(link.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalLink deserializes a Link from bytes.
func UnmarshalLink(data []byte) (*core.Link, error) {
	link := &core.Link{}
	d := decoder{data: data}

	link.Id = core.ID(d.uint64())
	link.URL = d.string()
	link.Title = d.string()
	link.Description = d.string()
	link.Summary = d.string()
	link.Tags = d.strings()
	link.ImageURL = d.string()
	link.RawContent = d.string()
	link.Source = core.SourceKind(d.uint64())
	link.Vector = d.vector()
	link.ChannelID = d.string()
	link.UserID = d.string()
	link.MessageTS = d.string()
	link.EnrichedAt = d.time()
	link.CreatedAt = d.time()
	link.UpdatedAt = d.time()

	if d.err != nil {
		return nil, d.err
	}
	return link, nil
}

func sizeLink(link *core.Link) int {
	size := varint.Uint64.Size(uint64(link.Id))
	size += ord.String.Size(link.URL)
	size += ord.String.Size(link.Title)
	size += ord.String.Size(link.Description)
	size += ord.String.Size(link.Summary)
	size += sizeStrings(link.Tags)
	size += ord.String.Size(link.ImageURL)
	size += ord.String.Size(link.RawContent)
	size += varint.Uint64.Size(uint64(link.Source))
	size += sizeVector(link.Vector)
	size += ord.String.Size(link.ChannelID)
	size += ord.String.Size(link.UserID)
	size += ord.String.Size(link.MessageTS)
	size += sizeTime(link.EnrichedAt)
	size += sizeTime(link.CreatedAt)
	size += sizeTime(link.UpdatedAt)
	return size
}

func marshalStrings(values []string, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(len(values)), bs)
	for _, v := range values {
		n += ord.String.Marshal(v, bs[n:])
	}
	return n
}

func sizeStrings(values []string) int {
	size := varint.Uint64.Size(uint64(len(values)))
	for _, v := range values {
		size += ord.String.Size(v)
	}
	return size
}

func marshalVector(vector []float32, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(len(vector)), bs)
	for _, v := range vector {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return n
}

func sizeVector(vector []float32) int {
	size := varint.Uint64.Size(uint64(len(vector)))
	for _, v := range vector {
		size += raw.Float32.Size(v)
	}
	return size
}

// Times are stored as Unix microseconds; zero stands for the zero time
// (e.g. a link that has never been enriched).
func marshalTime(t time.Time, bs []byte) int {
	var micros uint64
	if !t.IsZero() {
		micros = uint64(t.UnixMicro())
	}
	return varint.Uint64.Marshal(micros, bs)
}

func sizeTime(t time.Time) int {
	var micros uint64
	if !t.IsZero() {
		micros = uint64(t.UnixMicro())
	}
	return varint.Uint64.Size(micros)
}

// decoder walks a byte slice through the sequential unmarshal calls,
// capturing the first error and short-circuiting the rest.
type decoder struct {
	data []byte
	pos  int
	err  error
}

func (d *decoder) uint64() uint64 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(d.data[d.pos:])
	d.pos += n
	d.err = err
	return v
}

func (d *decoder) string() string {
	if d.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(d.data[d.pos:])
	d.pos += n
	d.err = err
	return v
}

func (d *decoder) strings() []string {
	count := d.uint64()
	if d.err != nil || count == 0 {
		return nil
	}
	values := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		values = append(values, d.string())
		if d.err != nil {
			return nil
		}
	}
	return values
}

func (d *decoder) vector() []float32 {
	count := d.uint64()
	if d.err != nil || count == 0 {
		return nil
	}
	vector := make([]float32, 0, count)
	for i := uint64(0); i < count; i++ {
		v, n, err := raw.Float32.Unmarshal(d.data[d.pos:])
		d.pos += n
		if err != nil {
			d.err = err
			return nil
		}
		vector = append(vector, v)
	}
	return vector
}

func (d *decoder) time() time.Time {
	micros := d.uint64()
	if d.err != nil || micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(int64(micros)).UTC()
}
