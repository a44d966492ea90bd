package main

import (
	"strings"
	"testing"

	"github.com/redeaux-corp/cryptopipe/internal/algo"
)

func TestParseArgsDefaults(t *testing.T) {
	opt, err := parseArgs([]string{"-e"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opt.cmd != cmdEncrypt {
		t.Errorf("cmd = %v, want cmdEncrypt", opt.cmd)
	}
	if opt.kdf.algorithm != algo.Argon2id || opt.kdf.time != 1 || opt.kdf.memoryKiB != 1<<21 || opt.kdf.parallelism != 4 {
		t.Errorf("default kdf = %+v, unexpected", opt.kdf)
	}
	if len(opt.ciphers) != 1 || opt.ciphers[0] != algo.ChaCha20 {
		t.Errorf("default ciphers = %v, want [ChaCha20]", opt.ciphers)
	}
	if len(opt.macs) != 1 || opt.macs[0] != algo.Poly1305MAC {
		t.Errorf("default macs = %v, want [Poly1305MAC]", opt.macs)
	}
	if opt.threads != 4 {
		t.Errorf("default threads = %d, want 4", opt.threads)
	}
}

func TestParseArgsHelp(t *testing.T) {
	opt, err := parseArgs([]string{"-h"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opt.cmd != cmdHelp {
		t.Errorf("cmd = %v, want cmdHelp", opt.cmd)
	}
}

func TestParseArgsFullFlagSet(t *testing.T) {
	args := []string{
		"-d",
		"-k", "argon2i,2,65536,2",
		"-c", "aes-128-ctr,chacha20",
		"-m", "hmac-sha256,poly1305",
		"-t", "8",
		"-i", "in.bin",
		"-o", "out.bin",
	}
	opt, err := parseArgs(args)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opt.cmd != cmdDecrypt {
		t.Errorf("cmd = %v, want cmdDecrypt", opt.cmd)
	}
	if opt.kdf.algorithm != algo.Argon2i || opt.kdf.time != 2 || opt.kdf.memoryKiB != 65536 || opt.kdf.parallelism != 2 {
		t.Errorf("kdf = %+v, unexpected", opt.kdf)
	}
	if len(opt.ciphers) != 2 || opt.ciphers[0] != algo.AES128CTR || opt.ciphers[1] != algo.ChaCha20 {
		t.Errorf("ciphers = %v, unexpected", opt.ciphers)
	}
	if len(opt.macs) != 2 || opt.macs[0] != algo.HMACSHA256 || opt.macs[1] != algo.Poly1305MAC {
		t.Errorf("macs = %v, unexpected", opt.macs)
	}
	if opt.threads != 8 {
		t.Errorf("threads = %d, want 8", opt.threads)
	}
	if opt.inputPath != "in.bin" || opt.outputPath != "out.bin" {
		t.Errorf("paths = %q, %q, unexpected", opt.inputPath, opt.outputPath)
	}
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseArgs([]string{"-e", "-z", "value"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestParseArgsRejectsUnknownCommand(t *testing.T) {
	if _, err := parseArgs([]string{"-x"}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestParseArgsRejectsOddFlagCount(t *testing.T) {
	if _, err := parseArgs([]string{"-e", "-t"}); err == nil {
		t.Error("expected error for a flag with no value")
	}
}

func TestParseCipherListRejectsTooMany(t *testing.T) {
	_, err := parseCipherList("chacha20,aes-128-ctr,aes-256-ctr")
	if err == nil {
		t.Fatal("expected error for more than two ciphers")
	}
	if !strings.Contains(err.Error(), "at most two") {
		t.Errorf("err = %q, want the at-most-two-ciphers message, not an incidental parse failure", err.Error())
	}
}

func TestParseMacListRejectsTooMany(t *testing.T) {
	_, err := parseMacList("poly1305,hmac-sha256,hmac-sha512")
	if err == nil {
		t.Fatal("expected error for more than two MACs")
	}
	if !strings.Contains(err.Error(), "at most two") {
		t.Errorf("err = %q, want the at-most-two-MACs message, not an incidental parse failure", err.Error())
	}
}
