package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/redeaux-corp/cryptopipe/internal/algo"
	"github.com/redeaux-corp/cryptopipe/internal/pipeline"
)

const helpText = `
NAME
	cryptopipe - stream encryption utility

SYNOPSIS
	cryptopipe -e [-k kdf][-c cipher][-m mac][-p password][-s key][-t threads][-i file][-o file]
	cryptopipe -d [-k kdf][-c cipher][-m mac][-p password][-s key][-t threads][-i file][-o file]
	cryptopipe -h

OPTIONS
	-e
		Encrypt file.
	-d
		Decrypt file.
	-h
		Show help.

	-k kdf
		Specifies the KDF algorithm.

		The supported KDFs are:
			argon2i,<time cost>,<memory cost>,<parallelism>
			argon2d,<time cost>,<memory cost>,<parallelism>
			argon2id,<time cost>,<memory cost>,<parallelism>

		The default is "argon2id,1,2097152,4".
	-c cipher
		Specifies the cipher algorithm, multiple ciphers must be comma-separated.

		The supported ciphers are:
			aes-128-ctr
			aes-192-ctr
			aes-256-ctr
			chacha20

		The default is "chacha20".
	-m mac
		Specifies the MAC algorithm, multiple MACs must be comma-separated.

		The supported MACs are:
			hmac-sha1
			hmac-sha256
			hmac-sha512
			poly1305

		The default is "poly1305".
	-p password
		Password file path. If omitted and stdin is a terminal, you will be
		prompted interactively; otherwise the default password is empty.
	-s key
		Secret key file path, the default secret key is empty.
	-t threads
		Number of threads, the default is 4.

	-i input
		Input file path, the default is stdin.
	-o output
		Output file path, the default is stdout.

NOTES
	Do not use a shell pipeline when decrypting: output must begin streaming
	before the trailing authentication tag can be validated, so a pipe
	consumer may see plaintext that a later tag mismatch invalidates.

EXAMPLES
	Encrypt and decrypt a file. The password is in password.txt:
		cryptopipe -e -i plaintext.txt -o ciphertext.txt -p password.txt
		cryptopipe -d -i ciphertext.txt -o plaintext.txt -p password.txt
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opt, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if opt.cmd == cmdHelp {
		fmt.Print(helpText)
		return 0
	}

	if err := execute(opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func execute(opt options) error {
	password, err := resolvePassword(opt.passwordFile)
	if err != nil {
		return err
	}
	secret, err := readFileOrEmpty(opt.secretFile)
	if err != nil {
		return fmt.Errorf("reading secret key file: %w", err)
	}

	in, err := openInput(opt.inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(opt.outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	suite := algo.Suite{Ciphers: opt.ciphers, Macs: opt.macs}
	kdf := pipeline.KdfSpec{
		Algorithm:   opt.kdf.algorithm,
		Time:        opt.kdf.time,
		MemoryKiB:   opt.kdf.memoryKiB,
		Parallelism: opt.kdf.parallelism,
	}

	threads := opt.threads
	if threads < 1 {
		threads = 1
	}

	ctx := context.Background()
	switch opt.cmd {
	case cmdEncrypt:
		return pipeline.EncryptStream(ctx, in, out, suite, kdf, password, secret, threads)
	case cmdDecrypt:
		err := pipeline.DecryptStream(ctx, in, out, suite, kdf, password, secret, threads)
		if errors.Is(err, pipeline.ErrAuthenticationFailure) {
			return fmt.Errorf("%w (output already written is not trustworthy)", err)
		}
		return err
	default:
		return fmt.Errorf("unknown command")
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening input file: %v", pipeline.ErrIO, err)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening output file: %v", pipeline.ErrIO, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
