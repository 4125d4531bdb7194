package ipfs

import (
	"flag"
	"os"

	"xdao.co/pngstash/storage"
	"xdao.co/pngstash/storage/casregistry"
)

var (
	flagIPFSBin  string
	flagIPFSPath string
)

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:        "ipfs",
		Description: "Kubo CLI archive store (local IPFS repo)",
		Usage:       casregistry.UsageCLI | casregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagIPFSBin, "ipfs-bin", "", "path to the ipfs binary (for --backend=ipfs; default \"ipfs\")")
			fs.StringVar(&flagIPFSPath, "ipfs-path", "", "IPFS repo directory, sets IPFS_PATH (for --backend=ipfs)")
		},
		Open: func() (storage.CAS, func() error, error) {
			opts := Options{Bin: flagIPFSBin}
			if flagIPFSPath != "" {
				opts.Env = append(os.Environ(), "IPFS_PATH="+flagIPFSPath)
			}
			return New(opts), nil, nil
		},
	})
}
