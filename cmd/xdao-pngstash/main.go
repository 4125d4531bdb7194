package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ipfs/go-cid"

	"xdao.co/pngstash/archive"
	"xdao.co/pngstash/chunk"
	"xdao.co/pngstash/cidutil"
	"xdao.co/pngstash/png"
	"xdao.co/pngstash/storage"
	"xdao.co/pngstash/storage/bundle"
	"xdao.co/pngstash/storage/casconfig"
	"xdao.co/pngstash/storage/casregistry"

	_ "xdao.co/pngstash/storage/grpccas"
	_ "xdao.co/pngstash/storage/ipfs"
	_ "xdao.co/pngstash/storage/localfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "encode":
		return cmdEncode(args[1:], out, errOut)
	case "decode":
		return cmdDecode(args[1:], out, errOut)
	case "remove":
		return cmdRemove(args[1:], out, errOut)
	case "print":
		return cmdPrint(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "archive":
		return cmdArchive(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "xdao-pngstash: hide, recover, and archive messages in PNG chunks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xdao-pngstash encode [--payload-file <file>] [-o <out>] [--archive] <png> <tag> <message>")
	fmt.Fprintln(w, "  xdao-pngstash decode [--raw] [--stash] <png> <tag>")
	fmt.Fprintln(w, "  xdao-pngstash remove [-o <out>] [--archive] <png> <tag>")
	fmt.Fprintln(w, "  xdao-pngstash print [--cids] [--json] <png>")
	fmt.Fprintln(w, "  xdao-pngstash cid <file>")
	fmt.Fprintln(w, "  xdao-pngstash archive put <file>")
	fmt.Fprintln(w, "  xdao-pngstash archive get --cid <cid> [--out <file>]")
	fmt.Fprintln(w, "  xdao-pngstash archive has --cid <cid>")
	fmt.Fprintln(w, "  xdao-pngstash archive restore --cid <cid> [--out <file>]")
	fmt.Fprintln(w, "  xdao-pngstash archive export [--out <file>] [--label name=cid ...] <cid> [<cid> ...]")
	fmt.Fprintln(w, "  xdao-pngstash archive import [--ignore-unknown] <bundle.tar>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Archive backends (flags accepted by encode/decode/remove and archive subcommands):")
	fmt.Fprintln(w, "  --backend localfs --localfs-dir <dir>        sharded directory store (default)")
	fmt.Fprintln(w, "  --backend ipfs --ipfs-path <repo>            local Kubo repo via the ipfs CLI")
	fmt.Fprintln(w, "  --backend grpc --grpc-target <host:port>     xdao-stashcasd daemon")
	fmt.Fprintln(w, "  --cas-config <file.json>                     multi-backend config (write_policy first|all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - a tag is four ASCII letters; bit 5 of each byte is a property flag")
	fmt.Fprintln(w, "  - encode appends the chunk before a trailing IEND and rewrites the file in place unless -o is given")
	fmt.Fprintln(w, "  - decode prints the chunk payload as UTF-8 text; --raw writes the exact bytes")
	fmt.Fprintln(w, "  - --archive snapshots the original file first and prints the snapshot CID")
	fmt.Fprintln(w, "  - archive restore re-validates the block parses as a PNG before writing it")
	fmt.Fprintln(w, "  - blocks are stored as raw CIDv1 + sha2-256; 'archive has' exits 1 when absent")
}

// printErr writes err prefixed with its structured kind when it has one,
// so scripts can tell corruption from truncation from tag problems.
func printErr(errOut io.Writer, err error) {
	var ce *chunk.Error
	if errors.As(err, &ce) {
		fmt.Fprintf(errOut, "%s: %v\n", ce.Kind, err)
		return
	}
	fmt.Fprintln(errOut, err)
}

type casFlags struct {
	backend      string
	configPath   string
	listBackends bool
}

func (c *casFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "", "archive backend name (default localfs; with --cas-config, the preferred backend)")
	fs.StringVar(&c.configPath, "cas-config", "", "JSON archive config file (overrides --backend selection)")
	fs.BoolVar(&c.listBackends, "list-backends", false, "List supported backends and exit")
	casregistry.RegisterFlags(fs, casregistry.UsageCLI)
}

func (c *casFlags) open() (storage.CAS, func() error, error) {
	if c.configPath != "" {
		cfg, err := casconfig.LoadFile(c.configPath)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Open(casregistry.UsageCLI, c.backend)
	}
	name := c.backend
	if name == "" {
		name = "localfs"
	}
	return casregistry.Open(name, casregistry.UsageCLI)
}

func printBackends(w io.Writer) {
	for _, b := range casregistry.List(casregistry.UsageCLI) {
		if b.Description == "" {
			_, _ = fmt.Fprintf(w, "%s\n", b.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Name, b.Description)
	}
}

func cmdEncode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var outPath string
	var payloadFile string
	var doArchive bool
	fs.StringVar(&outPath, "o", "", "Output file (default: rewrite input in place)")
	fs.StringVar(&payloadFile, "payload-file", "", "Read the payload from a file instead of the <message> argument")
	fs.BoolVar(&doArchive, "archive", false, "Snapshot the original file into the archive first; prints the snapshot CID")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	want := 3
	if payloadFile != "" {
		want = 2
	}
	if fs.NArg() != want {
		fmt.Fprintln(errOut, "usage: xdao-pngstash encode [flags] <png> <tag> <message>")
		fmt.Fprintln(errOut, "       xdao-pngstash encode [flags] --payload-file <file> <png> <tag>")
		return 2
	}
	path, tag := fs.Arg(0), fs.Arg(1)

	typ, err := chunk.ParseChunkType(tag)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	var payload []byte
	if payloadFile != "" {
		payload, err = os.ReadFile(payloadFile)
		if err != nil {
			fmt.Fprintf(errOut, "read --payload-file: %v\n", err)
			return 1
		}
	} else {
		payload = []byte(fs.Arg(2))
	}

	original, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", path, err)
		return 1
	}
	f, err := png.Parse(original)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	if doArchive {
		cas, closeFn, err := common.open()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		if closeFn != nil {
			defer closeFn()
		}
		id, err := archive.Snapshot(cas, original)
		if err != nil {
			printErr(errOut, err)
			return 1
		}
		_, _ = fmt.Fprintln(out, id.String())
	}

	f.AppendChunk(chunk.New(typ, payload))

	dst := outPath
	if dst == "" {
		dst = path
	}
	if err := os.WriteFile(dst, f.Bytes(), 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", dst, err)
		return 1
	}
	return 0
}

func cmdDecode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var raw bool
	var stash bool
	fs.BoolVar(&raw, "raw", false, "Write the payload bytes verbatim instead of printing text")
	fs.BoolVar(&stash, "stash", false, "Store the payload in the archive; prints payload-cid to stderr")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash decode [flags] <png> <tag>")
		return 2
	}
	path, tag := fs.Arg(0), fs.Arg(1)

	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", path, err)
		return 1
	}
	f, err := png.Parse(b)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	c, ok := f.ChunkByType(tag)
	if !ok {
		fmt.Fprintf(errOut, "chunk not found: %s\n", tag)
		return 1
	}

	if stash {
		cas, closeFn, err := common.open()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		if closeFn != nil {
			defer closeFn()
		}
		id, err := archive.StashPayload(cas, c)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		_, _ = fmt.Fprintf(errOut, "payload-cid: %s\n", id)
	}

	if raw {
		_, _ = out.Write(c.Data())
		return 0
	}
	text, err := c.Text()
	if err != nil {
		printErr(errOut, err)
		fmt.Fprintln(errOut, "payload is not valid UTF-8; rerun with --raw")
		return 1
	}
	_, _ = fmt.Fprintln(out, text)
	return 0
}

func cmdRemove(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var outPath string
	var doArchive bool
	fs.StringVar(&outPath, "o", "", "Output file (default: rewrite input in place)")
	fs.BoolVar(&doArchive, "archive", false, "Snapshot the original file into the archive first; prints the snapshot CID")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash remove [flags] <png> <tag>")
		return 2
	}
	path, tag := fs.Arg(0), fs.Arg(1)

	original, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", path, err)
		return 1
	}
	f, err := png.Parse(original)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	if doArchive {
		cas, closeFn, err := common.open()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		if closeFn != nil {
			defer closeFn()
		}
		id, err := archive.Snapshot(cas, original)
		if err != nil {
			printErr(errOut, err)
			return 1
		}
		_, _ = fmt.Fprintln(out, id.String())
	}

	removed, err := f.RemoveFirstChunk(tag)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	dst := outPath
	if dst == "" {
		dst = path
	}
	if err := os.WriteFile(dst, f.Bytes(), 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", dst, err)
		return 1
	}
	_, _ = fmt.Fprintf(errOut, "removed: %s\n", removed)
	return 0
}

func cmdPrint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var withCIDs bool
	var asJSON bool
	fs.BoolVar(&withCIDs, "cids", false, "Include each chunk's payload CID and the file CID")
	fs.BoolVar(&asJSON, "json", false, "Print the snapshot manifest as JSON")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash print [--cids] [--json] <png>")
		return 2
	}

	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}

	if asJSON {
		m, err := archive.Describe(b)
		if err != nil {
			printErr(errOut, err)
			return 1
		}
		enc, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		_, _ = fmt.Fprintf(out, "%s\n", enc)
		return 0
	}

	f, err := png.Parse(b)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	offset := len(png.Signature())
	for i, c := range f.Chunks() {
		line := fmt.Sprintf("%3d %8d %s %10d 0x%08x %s",
			i, offset, c.Type(), c.Length(), c.CRC(), describeType(c.Type()))
		if withCIDs {
			line += " " + cidutil.CIDv1RawSHA256(c.Data())
		}
		_, _ = fmt.Fprintln(out, line)
		offset += 12 + int(c.Length())
	}
	if withCIDs {
		_, _ = fmt.Fprintf(out, "file-cid: %s\n", cidutil.CIDv1RawSHA256(b))
	}
	return 0
}

func describeType(t chunk.ChunkType) string {
	parts := make([]string, 0, 4)
	if t.IsCritical() {
		parts = append(parts, "critical")
	} else {
		parts = append(parts, "ancillary")
	}
	if t.IsPublic() {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if !t.IsReservedBitValid() {
		parts = append(parts, "reserved!")
	}
	if t.IsSafeToCopy() {
		parts = append(parts, "safe-copy")
	} else {
		parts = append(parts, "unsafe-copy")
	}
	return strings.Join(parts, ",")
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash cid <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}
	_, _ = fmt.Fprintln(out, cidutil.CIDv1RawSHA256(b))
	return 0
}

func cmdArchive(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash archive <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: put, get, has, restore, export, import")
		return 2
	}
	switch args[0] {
	case "put":
		return cmdArchivePut(args[1:], out, errOut)
	case "get":
		return cmdArchiveGet(args[1:], out, errOut)
	case "has":
		return cmdArchiveHas(args[1:], out, errOut)
	case "restore":
		return cmdArchiveRestore(args[1:], out, errOut)
	case "export":
		return cmdArchiveExport(args[1:], out, errOut)
	case "import":
		return cmdArchiveImport(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown archive subcommand: %s\n", args[0])
		return 2
	}
}

func cmdArchivePut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash archive put [flags] <file>")
		return 2
	}

	cas, closeFn, err := common.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}
	id, err := cas.Put(b)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id.String())
	return 0
}

func cmdArchiveGet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var cidStr string
	var outPath string
	fs.StringVar(&cidStr, "cid", "", "CID to fetch")
	fs.StringVar(&outPath, "out", "", "Output file (optional; default stdout)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if cidStr == "" {
		fmt.Fprintln(errOut, "missing --cid")
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash archive get [flags] --cid <cid> [--out <file>]")
		return 2
	}

	cas, closeFn, err := common.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	id, err := cid.Decode(cidStr)
	if err != nil {
		fmt.Fprintln(errOut, storage.ErrInvalidCID)
		return 1
	}

	b, err := cas.Get(id)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if outPath == "" {
		_, _ = out.Write(b)
		return 0
	}
	if err := os.WriteFile(outPath, b, 0o600); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	return 0
}

func cmdArchiveHas(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive has", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var cidStr string
	fs.StringVar(&cidStr, "cid", "", "CID to check")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if cidStr == "" {
		fmt.Fprintln(errOut, "missing --cid")
		return 2
	}

	cas, closeFn, err := common.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	id, err := cid.Decode(cidStr)
	if err != nil {
		fmt.Fprintln(errOut, storage.ErrInvalidCID)
		return 1
	}

	if !cas.Has(id) {
		_, _ = fmt.Fprintln(out, "false")
		return 1
	}
	_, _ = fmt.Fprintln(out, "true")
	return 0
}

func cmdArchiveRestore(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive restore", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var cidStr string
	var outPath string
	fs.StringVar(&cidStr, "cid", "", "Snapshot CID to restore")
	fs.StringVar(&outPath, "out", "", "Output file (optional; default stdout)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if cidStr == "" {
		fmt.Fprintln(errOut, "missing --cid")
		return 2
	}

	cas, closeFn, err := common.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	id, err := cid.Decode(cidStr)
	if err != nil {
		fmt.Fprintln(errOut, storage.ErrInvalidCID)
		return 1
	}

	b, err := archive.Restore(cas, id)
	if err != nil {
		printErr(errOut, err)
		return 1
	}

	if outPath == "" {
		_, _ = out.Write(b)
		return 0
	}
	if err := os.WriteFile(outPath, b, 0o600); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	return 0
}

func cmdArchiveExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive export", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var outPath string
	var labelArgs multiString
	fs.StringVar(&outPath, "out", "", "Bundle file (optional; default stdout)")
	fs.Var(&labelArgs, "label", "Label to record in the bundle index, as name=cid (repeatable)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash archive export [flags] <cid> [<cid> ...]")
		return 2
	}

	ids := make([]cid.Cid, 0, fs.NArg())
	for _, s := range fs.Args() {
		id, err := cid.Decode(s)
		if err != nil {
			fmt.Fprintf(errOut, "%v: %s\n", storage.ErrInvalidCID, s)
			return 1
		}
		ids = append(ids, id)
	}

	labels := map[string]cid.Cid{}
	for _, l := range labelArgs {
		name, cidStr, ok := strings.Cut(l, "=")
		if !ok || name == "" {
			fmt.Fprintf(errOut, "invalid --label %q (want name=cid)\n", l)
			return 2
		}
		id, err := cid.Decode(cidStr)
		if err != nil {
			fmt.Fprintf(errOut, "%v: %s\n", storage.ErrInvalidCID, cidStr)
			return 1
		}
		labels[name] = id
	}

	cas, closeFn, err := common.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	var buf bytes.Buffer
	if err := bundle.Export(&buf, cas, ids, bundle.ExportOptions{IncludeIndex: true, Labels: labels}); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if outPath == "" {
		_, _ = out.Write(buf.Bytes())
		return 0
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	return 0
}

func cmdArchiveImport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive import", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common casFlags
	common.add(fs)

	var ignoreUnknown bool
	fs.BoolVar(&ignoreUnknown, "ignore-unknown", false, "Skip unknown bundle entries instead of failing")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: xdao-pngstash archive import [flags] <bundle.tar>")
		return 2
	}

	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}

	cas, closeFn, err := common.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	if err := bundle.ImportWithOptions(bytes.NewReader(b), cas, bundle.ImportOptions{IgnoreUnknown: ignoreUnknown}); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

type multiString []string

func (m *multiString) String() string { return strings.Join(*m, ",") }

func (m *multiString) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("empty value")
	}
	*m = append(*m, v)
	return nil
}
