// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadFromPath loads a secret into locked memory. The path names a
// file, or stdin when it is "-" (the form `helpdesk login
// --password-file -` takes in scripts). Surrounding whitespace is
// stripped, so the trailing newline an editor or `echo` leaves behind
// never becomes part of the password. Intermediate plaintext buffers
// are zeroed before returning; the caller must Close the returned
// Buffer.
func ReadFromPath(path string) (*Buffer, error) {
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	defer Zero(raw)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("secret: %s holds only whitespace", sourceName(path))
	}
	// NewFromBytes zeros trimmed; the deferred Zero catches the
	// whitespace bytes around it.
	return NewFromBytes(trimmed)
}

// readRaw fetches the secret bytes from the named source. Stdin reads
// stop at the first line so a piped heredoc cannot smuggle extra
// material into the password.
func readRaw(path string) ([]byte, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("secret: reading %s: %w", path, err)
		}
		return data, nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("secret: reading stdin: %w", err)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf("secret: stdin is empty")
	}
	return line, nil
}

func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
