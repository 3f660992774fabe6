package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var seeds = []string{
	"",
	"[]",
	"[[]]",
	"[1,1,3,1,1]",
	"[[1],[2,3,4]]",
	"[[8,7,6]]",
	"[1,[2,[3,[4,[5,6,7]]]],8,9]",
	"[1,2",
	"[1,@]",
	"[1]]",
	" [ 1 ,\t2 ]\r\n",
	"[18446744073709551616]",
	"[é]",
	"\xff[",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clip(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
