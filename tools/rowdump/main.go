package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"geoverse/internal/domain/geo"
)

// rowdump decodes captured GEODATA response lines into readable
// height/nswe columns. Reads a single line from --line or one line per
// row from stdin.
func main() {
	var line string
	flag.StringVar(&line, "line", "", "a single GEODATA|tileX|tileY|blockY|<base64> line")
	flag.Parse()

	if line != "" {
		if err := dump(line); err != nil {
			log.Fatal(err)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		if err := dump(scanner.Text()); err != nil {
			log.Fatal(err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

func dump(line string) error {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) != 5 || parts[0] != "GEODATA" {
		return fmt.Errorf("not a GEODATA line: %q", line)
	}
	samples, err := geo.DecodeRowText(parts[4])
	if err != nil {
		return err
	}

	fmt.Printf("region %s_%s blockY %s\n", parts[1], parts[2], parts[3])
	for bx, s := range samples {
		marker := ""
		if s == geo.NoData {
			marker = " (no data)"
		}
		fmt.Printf("  bx=%3d height=%6d nswe=0x%02X%s\n", bx, s.Height, s.Nswe, marker)
	}
	return nil
}
