// Package browse provides an interactive shell over a parsed disk image.
package browse

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/pkg/errors"

	"adfbuild/amiga/adf"
	"adfbuild/amiga/adf/cat"
	"adfbuild/storage"
)

const defaultDumpLength = 256

// NewShell returns a shell browsing disk, labelled with name.
func NewShell(disk *adf.Disk, name string) *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt(name + " > ")
	shell.Set("disk", disk)

	for _, cmd := range Commands() {
		shell.AddCmd(cmd)
	}

	return shell
}

// Commands lists the shell commands. They expect the disk under the "disk"
// key of the shell.
func Commands() []*ishell.Cmd {
	return []*ishell.Cmd{
		{Name: "ls", Help: "list files", Func: Ls},
		{Name: "table", Help: "print the file table report", Func: Table},
		{Name: "info", Help: "show disk details", Func: Info},
		{Name: "free", Help: "show free space", Func: Free},
		{Name: "check", Help: "verify checksum and layout", Func: Check},
		{Name: "dump", Help: "dump ID [N] - hex dump the first N bytes of a file", Func: Dump},
		{Name: "extract", Help: "extract ID PATH - write a file to the host", Func: Extract},
	}
}

func Ls(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)
	c.Print(ListText(disk))
}

func Table(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)
	c.Print(adf.Report(disk.Layout()))
}

func Info(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)
	c.Print(InfoText(disk))
}

func Free(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)
	start, size := disk.Free()
	c.Printf("%d bytes free at 0x%06X\n", size, start)
}

func Check(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)
	c.Print(CheckText(disk))
}

func Dump(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)

	if len(c.Args) < 1 {
		c.Err(errors.New("usage: dump ID [N]"))
		return
	}

	n := defaultDumpLength
	if len(c.Args) > 1 {
		v, err := strconv.Atoi(c.Args[1])
		if err != nil {
			c.Err(errors.Wrap(err, "length"))
			return
		}
		n = v
	}

	text, err := DumpText(disk, c.Args[0], n)
	if err != nil {
		c.Err(err)
		return
	}
	c.Print(text)
}

func Extract(c *ishell.Context) {
	disk := c.Get("disk").(*adf.Disk)

	if len(c.Args) != 2 {
		c.Err(errors.New("usage: extract ID PATH"))
		return
	}

	if err := ExtractFile(disk, c.Args[0], c.Args[1]); err != nil {
		c.Err(err)
		return
	}
	c.Printf("%s -> %s\n", c.Args[0], c.Args[1])
}

// ListText is the disk order catalog of disk.
func ListText(disk *adf.Disk) string {
	var buf bytes.Buffer
	cat.CommandCat(disk, false).Fprint(&buf)
	return buf.String()
}

func InfoText(disk *adf.Disk) string {
	var sb strings.Builder

	boot := "empty"
	if !disk.BootEmpty() {
		boot = fmt.Sprintf("checksum 0x%08X", adf.BootChecksum(disk.Boot))
		if !adf.ValidBootChecksum(disk.Boot) {
			boot += " (invalid)"
		}
	}

	start, size := disk.Free()
	fmt.Fprintf(&sb, "Disk number: %d\n", disk.DiskNumber)
	fmt.Fprintf(&sb, "Boot block:  %s\n", boot)
	fmt.Fprintf(&sb, "Files:       %d\n", len(disk.Entries))
	fmt.Fprintf(&sb, "Data:        0x%06X-0x%06X\n", disk.DataOffset(), start)
	fmt.Fprintf(&sb, "Free:        %d bytes\n", size)

	return sb.String()
}

func CheckText(disk *adf.Disk) string {
	problems := disk.Verify()
	if len(problems) == 0 {
		return "OK\n"
	}
	return strings.Join(problems, "\n") + "\n"
}

// DumpText hex dumps up to n bytes of the file tagged id.
func DumpText(disk *adf.Disk, id string, n int) (string, error) {
	data, err := disk.File(id)
	if err != nil {
		return "", err
	}
	if n >= 0 && n < len(data) {
		data = data[:n]
	}
	return hex.Dump(data), nil
}

// ExtractFile writes the file tagged id to path on the host.
func ExtractFile(disk *adf.Disk, id, path string) error {
	data, err := disk.File(id)
	if err != nil {
		return err
	}
	return storage.WriteFile(path, data)
}
