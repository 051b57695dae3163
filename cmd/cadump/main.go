// Package main implements cadump, a tiny CLI that frames a captured Channel
// Access byte stream (read from a file or stdin) and prints the commands it
// contains, one per line. It exists to exercise internal/framer and
// internal/command end to end without any network I/O of its own.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kulaginds/caproto-go/internal/command"
	"github.com/kulaginds/caproto-go/internal/framer"
	"github.com/kulaginds/caproto-go/internal/logging"
)

func main() {
	args, action := parseFlags()
	if action != "" {
		return
	}
	if err := run(args); err != nil {
		log.Fatalln(err)
	}
}

type parsedArgs struct {
	path     string
	role     string
	datagram bool
	logLevel string
}

func parseFlags() (parsedArgs, string) {
	return parseFlagsWithArgs(os.Args[1:])
}

func parseFlagsWithArgs(argv []string) (parsedArgs, string) {
	fs := flag.NewFlagSet("cadump", flag.ContinueOnError)
	path := fs.String("file", "", "path to a captured byte stream (default: stdin)")
	role := fs.String("from", "server", "role that produced the bytes: client or server")
	datagram := fs.Bool("datagram", false, "treat the input as a single UDP datagram (parse all commands, no NEED_DATA)")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	helpFlag := fs.Bool("help", false, "show help")

	_ = fs.Parse(argv)

	if *helpFlag {
		fs.Usage()
		return parsedArgs{}, "help"
	}

	return parsedArgs{path: *path, role: *role, datagram: *datagram, logLevel: *logLevel}, ""
}

func run(args parsedArgs) error {
	logging.SetLevelFromString(args.logLevel)

	var r io.Reader = os.Stdin
	if args.path != "" {
		f, err := os.Open(args.path)
		if err != nil {
			return fmt.Errorf("open %s: %w", args.path, err)
		}
		defer f.Close()
		r = f
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fromRole := command.SERVER
	if args.role == "client" {
		fromRole = command.CLIENT
	}

	if args.datagram {
		return dumpDatagram(buf, fromRole)
	}
	return dumpStream(buf, fromRole)
}

func dumpDatagram(buf []byte, fromRole command.Role) error {
	cmds, err := framer.ParseAll(buf, fromRole)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		fmt.Println(cmd)
	}
	return nil
}

func dumpStream(buf []byte, fromRole command.Role) error {
	for len(buf) > 0 {
		n, cmd, err := framer.Parse(buf, fromRole)
		if err != nil {
			if nd, ok := err.(*framer.NeedData); ok {
				return fmt.Errorf("incomplete trailing command: need %d more byte(s)", nd.Bytes)
			}
			return err
		}
		fmt.Println(cmd)
		buf = buf[n:]
	}
	return nil
}
