package lotus_test

import (
	"fmt"
	"math/big"

	"github.com/coldshalamov/lotus"
)

func ExampleEncode() {
	enc, err := lotus.Encode(42, lotus.J2D1)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%x\n", enc)

	v, bits, err := lotus.Decode(enc, lotus.J2D1)
	if err != nil {
		panic(err)
	}
	fmt.Println(v, bits)
	// Output:
	// 8340
	// 42 10
}

func ExampleEncodedBitLength() {
	for _, cfg := range []lotus.Config{lotus.J1D2, lotus.J2D1, lotus.J3D1} {
		bits, err := lotus.EncodedBitLength(1000, cfg)
		fmt.Println(cfg, bits, err)
	}
	// Output:
	// J1D2 15 <nil>
	// J2D1 14 <nil>
	// J3D1 15 <nil>
}

func ExampleEncodeBig() {
	v, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10) // 2^128-1
	enc, err := lotus.EncodeBig(v, lotus.J3D1)
	if err != nil {
		panic(err)
	}
	got, bits, err := lotus.DecodeBig(enc, lotus.J3D1)
	fmt.Println(got, bits, err)
	// Output:
	// 340282366920938463463374607431768211455 138 <nil>
}
