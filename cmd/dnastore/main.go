// Command dnastore is a thin CLI wrapper around the dnastore library: it
// has no behavior beyond what EncodeFile/DecodeSequences/ReadStats/
// WriteFASTA/WritePlain/LoadPlain already expose.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Hacktomm/dnastore"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
	"github.com/therootcompany/xz"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "fasta":
		err = runFasta(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnastore: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: dnastore <encode|decode|fasta|dump> [options] [paths...]\n")
}

// yamlConfig mirrors the subset of Params a config file may override.
type yamlConfig struct {
	ChunkSize      *int `yaml:"chunk_size"`
	Redundancy     *int `yaml:"redundancy"`
	Nsym           *int `yaml:"nsym"`
	SegmentNT      *int `yaml:"segment_nt"`
	ReseedAttempts *int `yaml:"reseed_attempts"`
}

func loadParams(configPath string, fs *pflag.FlagSet) (dnastore.Params, error) {
	p := dnastore.DefaultParams()
	p.Logger = slog.Default()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return p, fmt.Errorf("read config %s: %w", configPath, err)
		}
		var cfg yamlConfig
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return p, fmt.Errorf("parse config %s: %w", configPath, err)
		}
		if cfg.ChunkSize != nil {
			p.ChunkSize = *cfg.ChunkSize
		}
		if cfg.Redundancy != nil {
			p.Redundancy = *cfg.Redundancy
		}
		if cfg.Nsym != nil {
			p.Nsym = *cfg.Nsym
		}
		if cfg.SegmentNT != nil {
			p.SegmentNT = *cfg.SegmentNT
		}
		if cfg.ReseedAttempts != nil {
			p.ReseedAttempts = *cfg.ReseedAttempts
		}
	}

	if v, err := fs.GetInt("chunk-size"); err == nil && fs.Changed("chunk-size") {
		p.ChunkSize = v
	}
	if v, err := fs.GetInt("redundancy"); err == nil && fs.Changed("redundancy") {
		p.Redundancy = v
	}
	if v, err := fs.GetInt("nsym"); err == nil && fs.Changed("nsym") {
		p.Nsym = v
	}
	if v, err := fs.GetInt("segment-nt"); err == nil && fs.Changed("segment-nt") {
		p.SegmentNT = v
	}

	return p, p.Validate()
}

func runEncode(args []string) error {
	fs := pflag.NewFlagSet("encode", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "YAML file overriding the default encoder Params")
	fs.Int("chunk-size", 100, "bytes of input per RS-coded chunk")
	fs.Int("redundancy", 3, "replicate copies per oligo")
	fs.Int("nsym", 10, "Reed-Solomon parity symbols per chunk")
	fs.Int("segment-nt", 120, "max payload bases per oligo")
	out := fs.StringP("output", "o", "", "output file for the plain oligo dump (default: stdout)")
	fs.Parse(args)

	p, err := loadParams(*configPath, fs)
	if err != nil {
		return err
	}

	paths, err := expandGlobs(fs.Args())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("encode: no input files (expected one or more glob patterns)")
	}

	w, closeFn, err := createOutput(*out)
	if err != nil {
		return err
	}
	defer closeFn()

	for _, path := range paths {
		oligos, err := dnastore.EncodeFile(path, p)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := dnastore.WritePlain(w, oligos); err != nil {
			return fmt.Errorf("write output for %s: %w", path, err)
		}
	}
	return nil
}

func runDecode(args []string) error {
	fs := pflag.NewFlagSet("decode", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "YAML file overriding the default decoder Params")
	out := fs.StringP("output", "o", "", "output file for decoded bytes (default: stdout)")
	useXZ := fs.Bool("xz", false, "input oligo dump is xz-compressed")
	fs.Parse(args)

	p, err := loadParams(*configPath, fs)
	if err != nil {
		return err
	}

	r, closeFn, err := openInput(fs.Args(), *useXZ)
	if err != nil {
		return err
	}
	defer closeFn()

	oligos, err := dnastore.LoadPlain(r)
	if err != nil {
		return fmt.Errorf("read oligos: %w", err)
	}
	reads := make([]string, len(oligos))
	for i, o := range oligos {
		reads[i] = string(o)
	}

	ok, data := dnastore.DecodeSequences(reads, p)
	if !ok {
		return fmt.Errorf("decode: reconstruction failed")
	}

	w, closeOut, err := createOutput(*out)
	if err != nil {
		return err
	}
	defer closeOut()
	_, err = w.Write(data)
	return err
}

func runFasta(args []string) error {
	fs := pflag.NewFlagSet("fasta", pflag.ExitOnError)
	out := fs.StringP("output", "o", "", "output file (default: stdout)")
	useXZ := fs.Bool("xz", false, "input oligo dump is xz-compressed")
	fs.Parse(args)

	r, closeIn, err := openInput(fs.Args(), *useXZ)
	if err != nil {
		return err
	}
	defer closeIn()

	oligos, err := dnastore.LoadPlain(r)
	if err != nil {
		return fmt.Errorf("read oligos: %w", err)
	}

	w, closeOut, err := createOutput(*out)
	if err != nil {
		return err
	}
	defer closeOut()

	return dnastore.WriteFASTA(w, oligos)
}

func runDump(args []string) error {
	fs := pflag.NewFlagSet("dump", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "YAML file overriding the default decoder Params")
	useXZ := fs.Bool("xz", false, "input oligo dump is xz-compressed")
	fs.Parse(args)

	p, err := loadParams(*configPath, fs)
	if err != nil {
		return err
	}

	r, closeIn, err := openInput(fs.Args(), *useXZ)
	if err != nil {
		return err
	}
	defer closeIn()

	oligos, err := dnastore.LoadPlain(r)
	if err != nil {
		return fmt.Errorf("read oligos: %w", err)
	}
	reads := make([]string, len(oligos))
	for i, o := range oligos {
		reads[i] = string(o)
	}

	slog.Default().Info("oligosLoaded", "count", len(oligos))
	ok, data := dnastore.DecodeSequences(reads, p)
	total, distinct := dnastore.ReadStats(reads)
	fmt.Printf("ok=%v bytes=%d reads=%d distinct=%d\n", ok, len(data), total, distinct)
	return nil
}

// expandGlobs resolves doublestar patterns against the filesystem, matching
// the teacher's use of doublestar for archive path matching; a pattern with
// no glob metacharacters that matches nothing is tried as a literal path.
func expandGlobs(patterns []string) ([]string, error) {
	var out []string
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pat, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pat); err == nil {
				out = append(out, pat)
			}
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}

// openInput opens args[0] (or stdin if absent), optionally unwrapping an xz
// stream the way probe.go unwraps ".xz" archive members.
func openInput(args []string, useXZ bool) (io.Reader, func(), error) {
	var r io.Reader = os.Stdin
	closeFn := func() {}

	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", args[0], err)
		}
		r = f
		closeFn = func() { f.Close() }
	}

	if useXZ {
		zr, err := xz.NewReader(r, xz.DefaultDictMax)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("xz reader: %w", err)
		}
		return zr, closeFn, nil
	}
	return r, closeFn, nil
}

func createOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	return bw, func() { bw.Flush(); f.Close() }, nil
}
