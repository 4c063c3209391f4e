// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewStartsZeroed(t *testing.T) {
	buffer, err := New(48)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 48 {
		t.Errorf("Len = %d, want 48", buffer.Len())
	}
	if !bytes.Equal(buffer.Bytes(), make([]byte, 48)) {
		t.Error("fresh buffer is not zero-initialized")
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded", size)
		}
	}
}

func TestNewFromBytesCopiesAndScrubsSource(t *testing.T) {
	password := []byte("agent-p4ssw0rd")

	buffer, err := NewFromBytes(password)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "agent-p4ssw0rd" {
		t.Errorf("buffer holds %q", got)
	}
	// The caller's slice must not retain the password.
	if !bytes.Equal(password, make([]byte, len(password))) {
		t.Errorf("source still holds %q after copy", password)
	}
}

func TestNewFromBytesRejectsEmptySource(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("NewFromBytes(nil) succeeded")
	}
}

func TestZero(t *testing.T) {
	scratch := []byte("hd-session-token-01")
	Zero(scratch)
	if !bytes.Equal(scratch, make([]byte, len(scratch))) {
		t.Errorf("Zero left %q", scratch)
	}
}

func TestBytesIsWritable(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buffer.Close()

	copy(buffer.Bytes(), "typed-at-prompt")
	if got := buffer.String(); got != "typed-at-prompt\x00" {
		t.Errorf("buffer holds %q", got)
	}
}

func TestCloseReleasesAndIsIdempotent(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	copy(buffer.Bytes(), "agent-p4ssw0rd")

	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buffer.data != nil {
		t.Error("backing memory still referenced after Close")
	}
	if err := buffer.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestAccessAfterClosePanics(t *testing.T) {
	accessors := map[string]func(*Buffer){
		"Bytes":  func(buffer *Buffer) { buffer.Bytes() },
		"String": func(buffer *Buffer) { _ = buffer.String() },
	}
	for name, access := range accessors {
		t.Run(name, func(t *testing.T) {
			buffer, err := New(16)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			buffer.Close()

			defer func() {
				if recover() == nil {
					t.Errorf("%s on a closed buffer did not panic", name)
				}
			}()
			access(buffer)
		})
	}
}
