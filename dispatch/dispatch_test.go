package dispatch

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentalpoker/sra/big"
)

// run submits the requests and gathers one response per request, keyed by ID.
func run(t *testing.T, reqs ...Request) map[string]Response {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := New(nil)
	e.Start(ctx)
	<-e.Ready()

	for _, req := range reqs {
		require.NoError(t, e.Submit(ctx, req))
	}

	out := make(map[string]Response, len(reqs))
	for range reqs {
		resp := <-e.Results()
		out[resp.ID] = resp
	}
	return out
}

func TestTransformVectors(t *testing.T) {
	resps := run(t,
		Request{ID: "enc", Op: OpEncrypt, Params: []string{"5", "7", "19", "23"}},
		Request{ID: "dec", Op: OpDecrypt, Params: []string{"17", "7", "19", "23"}},
	)

	require.Empty(t, resps["enc"].Err)
	assert.Equal(t, []string{"17"}, resps["enc"].Result) // 5^7 mod 23
	require.Empty(t, resps["dec"].Err)
	assert.Equal(t, []string{"5"}, resps["dec"].Result) // 17^19 mod 23
}

func TestCheckPrime(t *testing.T) {
	resps := run(t,
		Request{ID: "p", Op: OpCheckPrime, Params: []string{"23"}},
		Request{ID: "c", Op: OpCheckPrime, Params: []string{"21"}},
		Request{ID: "hex", Op: OpCheckPrime, Params: []string{"0x17"}},
	)
	assert.Equal(t, []string{"true"}, resps["p"].Result)
	assert.Equal(t, []string{"false"}, resps["c"].Result)
	assert.Equal(t, []string{"true"}, resps["hex"].Result)
}

func TestRandomPrime(t *testing.T) {
	resps := run(t,
		Request{ID: "hex", Op: OpRandomPrime, Params: []string{"64"}},
		Request{ID: "dec", Op: OpRandomPrime, Params: []string{"64", "10"}},
	)

	for _, id := range []string{"hex", "dec"} {
		resp := resps[id]
		require.Empty(t, resp.Err)
		require.Len(t, resp.Result, 1)
		p, radix, err := big.ParseTagged(resp.Result[0])
		require.NoError(t, err)
		assert.Equal(t, 64, p.BitLen())
		assert.True(t, p.ProbablyPrime(64))
		if id == "hex" {
			assert.Equal(t, big.Hex, radix)
		} else {
			assert.Equal(t, big.Dec, radix)
		}
	}
}

func TestRandomKeypair(t *testing.T) {
	resps := run(t, Request{ID: "kp", Op: OpRandomKeypair, Params: []string{"23"}})
	resp := resps["kp"]
	require.Empty(t, resp.Err)
	require.Len(t, resp.Result, 3)

	enc, _, err := big.ParseTagged(resp.Result[0])
	require.NoError(t, err)
	dec, _, err := big.ParseTagged(resp.Result[1])
	require.NoError(t, err)
	prime, _, err := big.ParseTagged(resp.Result[2])
	require.NoError(t, err)

	require.Equal(t, int64(23), prime.Int64())
	check := new(big.Int).Mul(enc, dec)
	check.Mod(check, big.NewInt(22))
	assert.Equal(t, int64(1), check.Int64())
}

func TestRandomQuadResidues(t *testing.T) {
	resps := run(t, Request{ID: "qr", Op: OpRandomQuadResidue, Params: []string{"23", "3"}})
	resp := resps["qr"]
	require.Empty(t, resp.Err)
	assert.Equal(t, []string{"12", "13", "16"}, resp.Result)
}

func TestCheckResidues(t *testing.T) {
	resps := run(t,
		Request{ID: "mixed", Op: OpCheckResidues, Params: []string{"4", "0x5", "23"}},
	)
	resp := resps["mixed"]
	require.Empty(t, resp.Err)
	// each result renders in its value's own radix
	assert.Equal(t, []string{"1", "0x16"}, resp.Result)
}

func TestUnknownOp(t *testing.T) {
	resps := run(t, Request{ID: "x", Op: "shuffleUniverse"})
	assert.Contains(t, resps["x"].Err, "unknown operation")
}

func TestMalformedParams(t *testing.T) {
	resps := run(t,
		Request{ID: "badnum", Op: OpCheckPrime, Params: []string{"0x"}},
		Request{ID: "badbits", Op: OpRandomPrime, Params: []string{"lots"}},
		Request{ID: "composite", Op: OpRandomKeypair, Params: []string{"21"}},
	)
	assert.NotEmpty(t, resps["badnum"].Err)
	assert.NotEmpty(t, resps["badbits"].Err)
	assert.NotEmpty(t, resps["composite"].Err)
}

func TestConcurrentLoad(t *testing.T) {
	reqs := make([]Request, 0, 40)
	for i := 0; i < 40; i++ {
		reqs = append(reqs, Request{
			ID:     "enc" + strconv.Itoa(i),
			Op:     OpEncrypt,
			Params: []string{strconv.Itoa(i%22 + 1), "7", "19", "23"},
		})
	}
	resps := run(t, reqs...)
	require.Len(t, resps, 40)
	for id, resp := range resps {
		require.Empty(t, resp.Err, "request %s", id)
		require.Len(t, resp.Result, 1)
	}
}
