package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Id:      "msg-1",
				Subject: "Invoice #42",
				Body:    "Please pay $100 by Friday",
				From:    "billing@vendor.com",
				Date:    time.Now().Add(-1 * time.Hour),
			},
			wantErr: nil,
		},
		{
			name: "valid document with empty subject and body",
			doc: &Document{
				Id:   "msg-2",
				From: "noreply@example.com",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty id",
			doc: &Document{
				Subject: "hello",
			},
			wantErr: ErrEmptyDocumentID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQueryLogEntry(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		entry   *QueryLogEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &QueryLogEntry{
				Query:        "invoice payment",
				Timestamp:    validTime,
				ResultsCount: 3,
			},
			wantErr: nil,
		},
		{
			name: "valid entry with zero results",
			entry: &QueryLogEntry{
				Query:     "nonexistent",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidQueryLogEntry,
		},
		{
			name: "empty query",
			entry: &QueryLogEntry{
				Timestamp: validTime,
			},
			wantErr: ErrEmptyQuery,
		},
		{
			name: "future timestamp",
			entry: &QueryLogEntry{
				Query:     "hello",
				Timestamp: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name: "negative results count",
			entry: &QueryLogEntry{
				Query:        "hello",
				Timestamp:    validTime,
				ResultsCount: -1,
			},
			wantErr: ErrNegativeResultsCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQueryLogEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQueryLogEntry() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQueryLogEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
