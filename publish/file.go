// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"os"
)

// FileSink - append events to a file of JSON lines
type FileSink struct {
	fileName string
	file     *os.File
	encoder  *json.Encoder
}

// NewFileSink - open or create the event file for appending
func NewFileSink(fileName string) (*FileSink, error) {
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if nil != err {
		return nil, err
	}
	return &FileSink{
		fileName: fileName,
		file:     f,
		encoder:  json.NewEncoder(f),
	}, nil
}

// Name - sink name for logs and metrics
func (f *FileSink) Name() string {
	return "file"
}

// Publish - write one line
func (f *FileSink) Publish(record *Record) error {
	return f.encoder.Encode(record)
}

// Close - flush and close the file
func (f *FileSink) Close() error {
	if nil == f.file {
		return nil
	}
	err := f.file.Sync()
	if e := f.file.Close(); nil == err {
		err = e
	}
	f.file = nil
	return err
}
