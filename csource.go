package main

import (
	"crypto/dsa"
	"fmt"
	"io"
	"math/big"
)

// writeCSource renders params as a self-contained C constructor function.
// The layout matches what OpenSSL's apps historically emitted, so existing
// tooling that scrapes the output keeps working. Equal parameters always
// produce identical output.
func writeCSource(w io.Writer, params *dsa.Parameters) error {
	bits := params.P.BitLen()
	if _, err := fmt.Fprintf(w, "static DSA *get_dsa%d(void)\n{\n", bits); err != nil {
		return err
	}
	values := []struct {
		name string
		val  *big.Int
	}{
		{"dsap", params.P},
		{"dsaq", params.Q},
		{"dsag", params.G},
	}
	for _, v := range values {
		if err := writeByteArrayVar(w, v.val, v.name, bits); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w,
		"    DSA *dsa = DSA_new();\n"+
			"    BIGNUM *p, *q, *g;\n"+
			"\n"+
			"    if (dsa == NULL)\n"+
			"        return NULL;\n"+
			"    if (!DSA_set0_pqg(dsa, p = BN_bin2bn(dsap_%d, sizeof(dsap_%d), NULL),\n"+
			"                           q = BN_bin2bn(dsaq_%d, sizeof(dsaq_%d), NULL),\n"+
			"                           g = BN_bin2bn(dsag_%d, sizeof(dsag_%d), NULL))) {\n"+
			"        DSA_free(dsa);\n"+
			"        BN_free(p);\n"+
			"        BN_free(q);\n"+
			"        BN_free(g);\n"+
			"        return NULL;\n"+
			"    }\n"+
			"    return dsa;\n}\n",
		bits, bits, bits, bits, bits, bits)
	return err
}

// writeByteArrayVar emits one static byte array declaration holding the
// big-endian form of val, ten bytes per line. A zero value still gets a
// single 0x00 element so the array is never empty.
func writeByteArrayVar(w io.Writer, val *big.Int, name string, bits int) error {
	if _, err := fmt.Fprintf(w, "    static unsigned char %s_%d[] = {", name, bits); err != nil {
		return err
	}
	if val.Sign() == 0 {
		if _, err := io.WriteString(w, "\n        0x00"); err != nil {
			return err
		}
	} else {
		data := val.Bytes()
		for i, b := range data {
			sep := " "
			if i%10 == 0 {
				sep = "\n        "
			}
			comma := ","
			if i == len(data)-1 {
				comma = ""
			}
			if _, err := fmt.Fprintf(w, "%s0x%02X%s", sep, b, comma); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "\n    };\n")
	return err
}
