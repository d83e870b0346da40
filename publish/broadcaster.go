// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/kaonone/akropolis-c2fc-srml/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
)

// Configuration - publishing section of the daemon configuration
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Broadcaster - ZeroMQ PUB sink
type Broadcaster struct {
	log       *logger.L
	publicKey []byte
	socket4   *zmq.Socket
	socket6   *zmq.Socket
}

// NewBroadcaster - read the CURVE keys and bind every broadcast address
func NewBroadcaster(configuration *Configuration) (*Broadcaster, error) {
	log := logger.New("broadcaster")
	log.Info("initialising…")

	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		return nil, err
	}
	log.Tracef("public key:  %x", publicKey)

	if err := zmqutil.StartAuthentication(); nil != err {
		log.Errorf("start authentication error: %s", err)
		return nil, err
	}

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, configuration.Broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return nil, err
	}

	return &Broadcaster{
		log:       log,
		publicKey: publicKey,
		socket4:   socket4,
		socket6:   socket6,
	}, nil
}

// PublicKey - key subscribers need to connect
func (b *Broadcaster) PublicKey() []byte {
	return b.publicKey
}

// Name - sink name for logs and metrics
func (b *Broadcaster) Name() string {
	return "broadcast"
}

// Publish - send to every subscriber; messages are dropped while no
// subscriber is connected
func (b *Broadcaster) Publish(record *Record) error {
	data, err := json.Marshal(record)
	if nil != err {
		return err
	}

	for _, socket := range []*zmq.Socket{b.socket4, b.socket6} {
		if nil == socket {
			continue
		}
		if _, err := socket.Send(record.Type, zmq.SNDMORE|zmq.DONTWAIT); nil != err {
			return err
		}
		if _, err := socket.SendBytes(data, zmq.DONTWAIT); nil != err {
			return err
		}
	}
	return nil
}

// Close - close the sockets
func (b *Broadcaster) Close() error {
	err := error(nil)
	for _, socket := range []*zmq.Socket{b.socket4, b.socket6} {
		if nil == socket {
			continue
		}
		if e := socket.Close(); nil != e && nil == err {
			err = e
		}
	}
	b.socket4 = nil
	b.socket6 = nil
	return err
}
