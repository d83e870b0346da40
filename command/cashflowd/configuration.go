// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/kaonone/akropolis-c2fc-srml/configuration"
	"github.com/kaonone/akropolis-c2fc-srml/genesis"
	"github.com/kaonone/akropolis-c2fc-srml/messagebus"
	"github.com/kaonone/akropolis-c2fc-srml/publish"
	"github.com/kaonone/akropolis-c2fc-srml/util"
	"github.com/kaonone/akropolis-c2fc-srml/zmqutil"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "cashflow.leveldb"

	defaultInboxDirectory     = "inbox"
	defaultProcessedDirectory = "processed"
	defaultPollInterval       = 10 // seconds

	defaultEventFile = "events.log"

	defaultPublishPublicKey  = "publish.public"
	defaultPublishPrivateKey = "publish.private"

	defaultMetricsCertificate = "metrics.crt"
	defaultMetricsPrivateKey  = "metrics.key"
	defaultRequestRate        = 5.0
	defaultRequestBurst       = 10

	defaultLogDirectory = "log"
	defaultLogFile      = "cashflowd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type InboxType struct {
	Directory    string `gluamapper:"directory" json:"directory"`
	Processed    string `gluamapper:"processed" json:"processed"`
	PollInterval int    `gluamapper:"poll_interval" json:"poll_interval"`
}

type EventsType struct {
	File      string `gluamapper:"file" json:"file"`
	QueueSize int    `gluamapper:"queue_size" json:"queue_size"`
}

type MetricsType struct {
	Listen       string  `gluamapper:"listen" json:"listen"`
	TLS          bool    `gluamapper:"tls" json:"tls"`
	Certificate  string  `gluamapper:"certificate" json:"certificate"`
	PrivateKey   string  `gluamapper:"private_key" json:"private_key"`
	RequestRate  float64 `gluamapper:"request_rate" json:"request_rate"`
	RequestBurst int     `gluamapper:"request_burst" json:"request_burst"`
}

type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Inbox      InboxType             `gluamapper:"inbox" json:"inbox"`
	Events     EventsType            `gluamapper:"events" json:"events"`
	Publishing publish.Configuration `gluamapper:"publishing" json:"publishing"`
	Metrics    MetricsType           `gluamapper:"metrics" json:"metrics"`

	Genesis []genesis.Endowment  `gluamapper:"genesis" json:"genesis"`
	Logging logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Inbox: InboxType{
			Directory:    defaultInboxDirectory,
			Processed:    defaultProcessedDirectory,
			PollInterval: defaultPollInterval,
		},

		Events: EventsType{
			File:      defaultEventFile,
			QueueSize: messagebus.DefaultQueueSize,
		},

		Publishing: publish.Configuration{
			Broadcast:  []string{}, // disabled
			PublicKey:  defaultPublishPublicKey,
			PrivateKey: defaultPublishPrivateKey,
		},

		Metrics: MetricsType{
			Listen:       "", // disabled
			Certificate:  defaultMetricsCertificate,
			PrivateKey:   defaultMetricsPrivateKey,
			RequestRate:  defaultRequestRate,
			RequestBurst: defaultRequestBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if options.Inbox.PollInterval <= 0 {
		return nil, fmt.Errorf("Inbox: poll interval: %d must be positive", options.Inbox.PollInterval)
	}
	if options.Events.QueueSize <= 0 {
		return nil, fmt.Errorf("Events: queue size: %d must be positive", options.Events.QueueSize)
	}
	for _, address := range options.Publishing.Broadcast {
		if _, _, err := zmqutil.Endpoint(address); nil != err {
			return nil, fmt.Errorf("Publishing: broadcast: %q error: %s", address, err)
		}
	}
	if options.Metrics.RequestRate <= 0 || options.Metrics.RequestBurst <= 0 {
		return nil, fmt.Errorf("Metrics: request rate: %g and burst: %d must be positive", options.Metrics.RequestRate, options.Metrics.RequestBurst)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Inbox.Directory,
		&options.Inbox.Processed,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Metrics.Certificate,
		&options.Metrics.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Events.File,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Inbox.Directory,
		options.Inbox.Processed,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
