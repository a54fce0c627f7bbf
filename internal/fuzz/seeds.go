package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = map[string][]string{
	"pl0": {
		"",
		"begin end.",
		"var x; begin x := 1 end.",
		"{ comment } x",
		"{ unterminated",
		"a :== b # c",
		"café := 1",
	},
	"arith": {
		"",
		"1+2",
		"7 * (1 + $ 2)",
		"((((((1))))))",
		"\n\n 3 \t- 4",
	},
}

// addCorpusSeeds adds the built-in seeds for a grammar and every testdata
// file with the grammar's extension.
func addCorpusSeeds(f *testing.F, grammarName string) {
	for _, s := range builtinSeeds[grammarName] {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f, "."+grammarName)
}

func addTestdataSeeds(f *testing.F, ext string) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем файлы нужного расширения
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
