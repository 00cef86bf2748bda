package fenc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// SelfTestInput is the JSON shape read from standard input by the
// selftest subcommand: named sub-inputs, one per crypto component. Any
// sub-object may be omitted; only the supplied ones are exercised.
type SelfTestInput struct {
	KDF *struct {
		Password string `json:"password"`
		SaltHex  string `json:"salt"`
	} `json:"kdf,omitempty"`

	Schedule *struct {
		MasterHex string `json:"master"`
	} `json:"schedule,omitempty"`

	Feistel *struct {
		K1Hex    string `json:"k1"`
		K2Hex    string `json:"k2"`
		K3Hex    string `json:"k3"`
		K4Hex    string `json:"k4"`
		BlockHex string `json:"block"`
		Decrypt  bool   `json:"decrypt"`
	} `json:"feistel,omitempty"`

	MAC *struct {
		KeyHex string `json:"key"`
		MsgHex string `json:"msg"`
	} `json:"mac,omitempty"`

	Indexer *struct {
		Text string `json:"text"`
	} `json:"indexer,omitempty"`
}

// SelfTestOutput mirrors SelfTestInput: one named result per component
// that was exercised.
type SelfTestOutput struct {
	KDF      *SelfTestKDFOutput      `json:"kdf,omitempty"`
	Schedule *SelfTestScheduleOutput `json:"schedule,omitempty"`
	Feistel  *SelfTestFeistelOutput  `json:"feistel,omitempty"`
	MAC      *SelfTestMACOutput      `json:"mac,omitempty"`
	Indexer  *SelfTestIndexerOutput  `json:"indexer,omitempty"`
}

type SelfTestKDFOutput struct {
	MasterHex string `json:"master_key"`
}

type SelfTestScheduleOutput struct {
	ValidatorHex string `json:"validator"`
	K1Hex        string `json:"k1"`
	K2Hex        string `json:"k2"`
	K3Hex        string `json:"k3"`
	K4Hex        string `json:"k4"`
	K5Hex        string `json:"k5"`
	K6Hex        string `json:"k6"`
}

type SelfTestFeistelOutput struct {
	OutputHex string `json:"output"`
}

type SelfTestMACOutput struct {
	TagHex string `json:"tag"`
}

type SelfTestIndexerOutput struct {
	// NormalizedTerms is the sorted, deduplicated, normalized token set
	// before blinding. The self-test exposes it unblinded since no key
	// is supplied to it, unlike the real encrypt path.
	NormalizedTerms []string `json:"normalized_terms"`
}

// RunSelfTest reads a SelfTestInput as JSON from r and writes the
// corresponding SelfTestOutput as JSON to w. It is a grading/debugging
// harness, not part of the production encrypt/decrypt/search paths.
func RunSelfTest(r io.Reader, w io.Writer) error {
	var in SelfTestInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("fenc: failed to parse selftest input: %w", err)
	}

	var out SelfTestOutput

	if in.KDF != nil {
		salt, err := decodeHex(in.KDF.SaltHex, SaltSize)
		if err != nil {
			return err
		}
		master, err := DeriveMasterKey(in.KDF.Password, salt)
		if err != nil {
			return err
		}
		out.KDF = &SelfTestKDFOutput{MasterHex: encodeHex(master[:])}
	}

	if in.Schedule != nil {
		masterBytes, err := decodeHex(in.Schedule.MasterHex, MasterKeySize)
		if err != nil {
			return err
		}
		var master MasterKey
		copy(master[:], masterBytes)

		subkeys, err := DeriveSubkeys(master)
		if err != nil {
			return err
		}
		out.Schedule = &SelfTestScheduleOutput{
			ValidatorHex: encodeHex(subkeys.Validator[:]),
			K1Hex:        encodeHex(subkeys.K1[:]),
			K2Hex:        encodeHex(subkeys.K2[:]),
			K3Hex:        encodeHex(subkeys.K3[:]),
			K4Hex:        encodeHex(subkeys.K4[:]),
			K5Hex:        encodeHex(subkeys.K5[:]),
			K6Hex:        encodeHex(subkeys.K6[:]),
		}
	}

	if in.Feistel != nil {
		k1, err := decodeSubkeyHex(in.Feistel.K1Hex)
		if err != nil {
			return err
		}
		k2, err := decodeSubkeyHex(in.Feistel.K2Hex)
		if err != nil {
			return err
		}
		k3, err := decodeSubkeyHex(in.Feistel.K3Hex)
		if err != nil {
			return err
		}
		k4, err := decodeSubkeyHex(in.Feistel.K4Hex)
		if err != nil {
			return err
		}
		block, err := hex.DecodeString(in.Feistel.BlockHex)
		if err != nil {
			return fmt.Errorf("fenc: invalid feistel block hex: %w", err)
		}

		cipher := NewFeistelCipher()
		var result []byte
		if in.Feistel.Decrypt {
			result, err = cipher.Decrypt(k1, k2, k3, k4, block)
		} else {
			result, err = cipher.Encrypt(k1, k2, k3, k4, block)
		}
		if err != nil {
			return err
		}
		out.Feistel = &SelfTestFeistelOutput{OutputHex: encodeHex(result)}
	}

	if in.MAC != nil {
		key, err := decodeSubkeyHex(in.MAC.KeyHex)
		if err != nil {
			return err
		}
		msg, err := hex.DecodeString(in.MAC.MsgHex)
		if err != nil {
			return fmt.Errorf("fenc: invalid mac message hex: %w", err)
		}
		tag := MACTag(key, msg)
		out.MAC = &SelfTestMACOutput{TagHex: encodeHex(tag[:])}
	}

	if in.Indexer != nil {
		variants := ExtractVariants(in.Indexer.Text)
		seen := make(map[string]struct{}, len(variants))
		var normalized []string
		for _, v := range variants {
			n := NormalizeToken(v)
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			normalized = append(normalized, n)
		}
		sort.Strings(normalized)
		out.Indexer = &SelfTestIndexerOutput{NormalizedTerms: normalized}
	}

	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

func decodeSubkeyHex(s string) ([SubkeySize]byte, error) {
	var key [SubkeySize]byte
	b, err := decodeHex(s, SubkeySize)
	if err != nil {
		return key, err
	}
	copy(key[:], b)
	return key, nil
}
