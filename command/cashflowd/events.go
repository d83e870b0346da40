// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/publish"
)

// event destinations enabled by the configuration
//
// the event file and the broadcaster are both optional; with neither
// the events are only logged
func eventSinks(log *logger.L, options *Configuration) ([]publish.Sink, error) {
	sinks := []publish.Sink{}

	if "" != options.Events.File {
		file, err := publish.NewFileSink(options.Events.File)
		if nil != err {
			log.Errorf("event file: %q  error: %s", options.Events.File, err)
			return nil, err
		}
		log.Infof("event file: %q", options.Events.File)
		sinks = append(sinks, file)
	}

	if 0 != len(options.Publishing.Broadcast) {
		broadcaster, err := publish.NewBroadcaster(&options.Publishing)
		if nil != err {
			closeSinks(sinks)
			return nil, err
		}
		log.Infof("broadcast: %q  public key: %x", options.Publishing.Broadcast, broadcaster.PublicKey())
		sinks = append(sinks, broadcaster)
	}

	return sinks, nil
}

func closeSinks(sinks []publish.Sink) {
	for _, s := range sinks {
		s.Close()
	}
}
