// Command cryptopipe is the CLI front end for the project's streaming
// file encryption engine, grounded on
// original_source/program/encrypt/src/main.cpp. Flag parsing is hand-rolled
// in the original's positional-command-then-flag-pairs style rather than
// built on a flag-parsing library: nothing in the 1070-file example pack
// reaches for one (no cobra/pflag anywhere), and the -c/-m flags' comma-
// separated composite values don't fit the standard library's flag
// package either.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/redeaux-corp/cryptopipe/internal/algo"
)

type command int

const (
	cmdHelp command = iota
	cmdEncrypt
	cmdDecrypt
)

type options struct {
	cmd           command
	kdf           kdfFlag
	ciphers       []algo.CipherID
	macs          []algo.MacID
	passwordFile  string
	secretFile    string
	threads       int
	inputPath     string
	outputPath    string
}

type kdfFlag struct {
	algorithm   algo.KdfID
	time        uint32
	memoryKiB   uint32
	parallelism uint32
}

func defaultOptions() options {
	return options{
		cmd:     cmdHelp,
		kdf:     kdfFlag{algorithm: algo.Argon2id, time: 1, memoryKiB: 1 << 21, parallelism: 4},
		ciphers: []algo.CipherID{algo.ChaCha20},
		macs:    []algo.MacID{algo.Poly1305MAC},
		threads: 4,
	}
}

func parseArgs(args []string) (options, error) {
	opt := defaultOptions()
	if len(args) < 1 {
		return opt, fmt.Errorf("missing arguments; type -h for a list")
	}

	switch args[0] {
	case "-e":
		opt.cmd = cmdEncrypt
	case "-d":
		opt.cmd = cmdDecrypt
	case "-h":
		opt.cmd = cmdHelp
		return opt, nil
	default:
		return opt, fmt.Errorf("unknown command %q; type -h for a list", args[0])
	}

	rest := args[1:]
	if len(rest)%2 != 0 {
		return opt, fmt.Errorf("missing arguments")
	}

	for i := 0; i < len(rest); i += 2 {
		flag, value := rest[i], rest[i+1]
		var err error
		switch flag {
		case "-k":
			opt.kdf, err = parseKdfFlag(value)
		case "-c":
			opt.ciphers, err = parseCipherList(value)
		case "-m":
			opt.macs, err = parseMacList(value)
		case "-p":
			opt.passwordFile = value
		case "-s":
			opt.secretFile = value
		case "-t":
			opt.threads, err = strconv.Atoi(value)
		case "-i":
			opt.inputPath = value
		case "-o":
			opt.outputPath = value
		default:
			err = fmt.Errorf("unknown option %q", flag)
		}
		if err != nil {
			return opt, err
		}
	}

	return opt, nil
}

func parseKdfFlag(s string) (kdfFlag, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return kdfFlag{}, fmt.Errorf("-k expects algorithm,time,memory,parallelism")
	}
	alg, err := algo.ParseKdfID(parts[0])
	if err != nil {
		return kdfFlag{}, err
	}
	t, err := parseU32(parts[1])
	if err != nil {
		return kdfFlag{}, err
	}
	m, err := parseU32(parts[2])
	if err != nil {
		return kdfFlag{}, err
	}
	p, err := parseU32(parts[3])
	if err != nil {
		return kdfFlag{}, err
	}
	return kdfFlag{algorithm: alg, time: t, memoryKiB: m, parallelism: p}, nil
}

func parseU32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseCipherList(s string) ([]algo.CipherID, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return nil, fmt.Errorf("-c accepts at most two comma-separated ciphers")
	}
	var out []algo.CipherID
	for _, p := range parts {
		id, err := algo.ParseCipherID(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func parseMacList(s string) ([]algo.MacID, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return nil, fmt.Errorf("-m accepts at most two comma-separated MACs")
	}
	var out []algo.MacID
	for _, p := range parts {
		id, err := algo.ParseMacID(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func readFileOrEmpty(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}
