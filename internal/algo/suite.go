package algo

import "fmt"

// Suite bundles the (up to two) ciphers and (up to two) MACs the CLI's -c
// and -m flags select, matching the original CLI's dual-cipher/dual-MAC
// composition. The ciphers and MACs are applied in list order as nested
// transforms: cipher-then-cipher on encrypt (and the reverse order on
// decrypt), MAC-then-MAC independently over the ciphertext.
type Suite struct {
	Ciphers []CipherID
	Macs    []MacID
}

// KeyMaterialSize is the total number of KDF output bytes this suite
// needs: each cipher and each MAC gets its own independently derived key
// material slice.
func (s Suite) KeyMaterialSize() int {
	total := 0
	for _, c := range s.Ciphers {
		total += c.KeyMaterialSize()
	}
	for _, m := range s.Macs {
		total += m.KeyMaterialSize()
	}
	return total
}

// Keys describes one suite's worth of constructed ciphers and MACs, sliced
// out of a single KDF output buffer in (ciphers..., macs...) order.
type Keys struct {
	Ciphers []StreamCipher
	Macs    []MAC
}

// Build slices keyMaterial (which must be exactly KeyMaterialSize(s) bytes,
// as produced by DeriveKey) into the suite's ciphers and MACs.
func (s Suite) Build(keyMaterial []byte) (Keys, error) {
	if len(keyMaterial) != s.KeyMaterialSize() {
		return Keys{}, fmt.Errorf("algo: suite key material must be %d bytes, got %d", s.KeyMaterialSize(), len(keyMaterial))
	}

	var out Keys
	offset := 0
	for _, c := range s.Ciphers {
		n := c.KeyMaterialSize()
		cipher, err := NewCipher(c, keyMaterial[offset:offset+n])
		if err != nil {
			return Keys{}, err
		}
		out.Ciphers = append(out.Ciphers, cipher)
		offset += n
	}
	for _, m := range s.Macs {
		n := m.KeyMaterialSize()
		mac, err := NewMAC(m, keyMaterial[offset:offset+n])
		if err != nil {
			return Keys{}, err
		}
		out.Macs = append(out.Macs, mac)
		offset += n
	}
	return out, nil
}

// CipherKeyMaterialSize is the portion of KeyMaterialSize consumed by
// ciphers alone (the prefix of the KDF output, before the MAC keys).
func (s Suite) CipherKeyMaterialSize() int {
	total := 0
	for _, c := range s.Ciphers {
		total += c.KeyMaterialSize()
	}
	return total
}

// BuildCiphers constructs a fresh, independent set of StreamCiphers from
// the cipher-key-material prefix of a full suite key buffer. internal/
// pipeline calls this once per worker goroutine, since a StreamCipher's
// counter position is mutable and not safe for concurrent use — unlike
// MACs, which the pipeline keeps as a single shared, order-serialized
// instance.
func (s Suite) BuildCiphers(cipherKeyMaterial []byte) ([]StreamCipher, error) {
	if len(cipherKeyMaterial) != s.CipherKeyMaterialSize() {
		return nil, fmt.Errorf("algo: cipher key material must be %d bytes, got %d", s.CipherKeyMaterialSize(), len(cipherKeyMaterial))
	}

	var out []StreamCipher
	offset := 0
	for _, c := range s.Ciphers {
		n := c.KeyMaterialSize()
		cipher, err := NewCipher(c, cipherKeyMaterial[offset:offset+n])
		if err != nil {
			return nil, err
		}
		out = append(out, cipher)
		offset += n
	}
	return out, nil
}

// MacOutputSize is the combined trailing-tag size for the suite's MACs, in
// stream order — this is the number of bytes the pipeline's InputMgr must
// hold back when decrypting (the reserve-tail-buffer design in internal/pipeline).
func (s Suite) MacOutputSize() int {
	total := 0
	for _, m := range s.Macs {
		total += m.OutputSize()
	}
	return total
}
