// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"net"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/kaonone/akropolis-c2fc-srml/fault"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
)

// Endpoint - convert "IP:port" to a tcp:// endpoint, true for IPv6
func Endpoint(address string) (string, bool, error) {
	host, port, err := net.SplitHostPort(address)
	if nil != err {
		return "", false, fault.ErrInvalidAddress
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return "", false, fault.ErrInvalidAddress
	}
	if n, err := strconv.Atoi(port); nil != err || n <= 0 || n > 65535 {
		return "", false, fault.ErrInvalidAddress
	}

	if nil != ip.To4() {
		return "tcp://" + ip.String() + ":" + port, false, nil
	}
	return "tcp://[" + ip.String() + "]:" + port, true, nil
}

// NewBind - bind a list of addresses
//
// creates up to 2 sockets for separate IPv4 and IPv6 traffic
func NewBind(log *logger.L, socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, listen []string) (*zmq.Socket, *zmq.Socket, error) {

	socket4 := (*zmq.Socket)(nil) // IPv4 traffic
	socket6 := (*zmq.Socket)(nil) // IPv6 traffic

	fail := func(err error) (*zmq.Socket, *zmq.Socket, error) {
		if nil != socket4 {
			socket4.Close()
		}
		if nil != socket6 {
			socket6.Close()
		}
		return nil, nil, err
	}

	for i, address := range listen {
		bindTo, v6, err := Endpoint(address)
		if nil != err {
			log.Errorf("address[%d]: %q  error: %s", i, address, err)
			return fail(err)
		}

		socket := &socket4
		if v6 {
			socket = &socket6
		}
		if nil == *socket {
			*socket, err = NewServerSocket(socketType, zapDomain, privateKey, publicKey, v6)
			if nil != err {
				return fail(err)
			}
		}

		if err := (*socket).Bind(bindTo); nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, bindTo, err)
			return fail(err)
		}
		log.Infof("bind[%d]: %q  IPv6: %v", i, bindTo, v6)
	}

	return socket4, socket6, nil
}

// NewServerSocket - CURVE server socket that allows any client
func NewServerSocket(socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, v6 bool) (*zmq.Socket, error) {

	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)

	settings := []error{
		socket.SetCurveServer(1),
		socket.SetCurveSecretkey(string(privateKey)),
		socket.SetZapDomain(zapDomain),
		socket.SetIdentity(string(publicKey)),
		socket.SetIpv6(v6),
		socket.SetLinger(0),
		socket.SetHeartbeatIvl(heartbeatInterval),
		socket.SetHeartbeatTimeout(heartbeatTimeout),
		socket.SetHeartbeatTtl(heartbeatTTL),
	}
	for _, err := range settings {
		if nil != err {
			socket.Close()
			return nil, err
		}
	}

	return socket, nil
}
