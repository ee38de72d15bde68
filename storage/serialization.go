// Copyright 2025 Poiesic Systems
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

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/maildex/core"
)

// idSer serializes core.ID as a varint uint64.
type idSer struct{}

// IDMUS is the MUS serializer for core.ID.
var IDMUS = idSer{}

var _ mus.Serializer[core.ID] = IDMUS

func (idSer) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idSer) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// queryLogEntrySer serializes core.QueryLogEntry field by field. Timestamps
// are stored as UTC Unix microseconds.
type queryLogEntrySer struct{}

// QueryLogEntryMUS is the MUS serializer for core.QueryLogEntry.
var QueryLogEntryMUS = queryLogEntrySer{}

var _ mus.Serializer[core.QueryLogEntry] = QueryLogEntryMUS

func (queryLogEntrySer) Marshal(entry core.QueryLogEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(entry.Id, bs)
	n += ord.String.Marshal(entry.Query, bs[n:])
	n += varint.Int64.Marshal(entry.Timestamp.UnixMicro(), bs[n:])
	n += varint.Int.Marshal(entry.ResultsCount, bs[n:])
	n += varint.Int64.Marshal(entry.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (queryLogEntrySer) Unmarshal(bs []byte) (entry core.QueryLogEntry, n int, err error) {
	var n1 int
	entry.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return entry, n, err
	}
	entry.Query, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return entry, n, err
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return entry, n, err
	}
	entry.Timestamp = time.UnixMicro(micros).UTC()
	entry.ResultsCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return entry, n, err
	}
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return entry, n, err
	}
	entry.InsertedAt = time.UnixMicro(micros).UTC()
	return entry, n, nil
}

func (queryLogEntrySer) Size(entry core.QueryLogEntry) (size int) {
	size = IDMUS.Size(entry.Id)
	size += ord.String.Size(entry.Query)
	size += varint.Int64.Size(entry.Timestamp.UnixMicro())
	size += varint.Int.Size(entry.ResultsCount)
	size += varint.Int64.Size(entry.InsertedAt.UnixMicro())
	return size
}

func (queryLogEntrySer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return n, err
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalQueryLogEntry serializes a QueryLogEntry to bytes.
func MarshalQueryLogEntry(entry *core.QueryLogEntry) []byte {
	buf := make([]byte, QueryLogEntryMUS.Size(*entry))
	QueryLogEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalQueryLogEntry deserializes a QueryLogEntry from bytes.
func UnmarshalQueryLogEntry(data []byte) (*core.QueryLogEntry, error) {
	entry, _, err := QueryLogEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
