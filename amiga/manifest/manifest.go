// Package manifest loads a disk.json definition and the files it names.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"adfbuild/amiga/adf"
	"adfbuild/storage"
)

const (
	// DefaultConfig is the manifest file name used when none is given.
	DefaultConfig = "disk.json"

	// DefaultBootFile is the boot block read by BootFromFile("").
	DefaultBootFile = "bootblock.bin"

	defaultDiskNumber = 1
)

var (
	// loadWorkers bounds the number of item files read at once.
	loadWorkers = runtime.NumCPU()

	readFile = storage.ReadFile
)

// SourceUnavailable is returned when a file named by the manifest cannot be
// read.
type SourceUnavailable struct {
	Path string
	Err  error
}

func (e SourceUnavailable) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Path, e.Err)
}

// Definition is the JSON form of a disk.
//
//	{
//	  "DiskNumber": 1,
//	  "BootBlock": {"FileName": "boot.bin"},
//	  "DiskItems": [{"FileName": "intro.bin", "FileID": "INTR"}]
//	}
type Definition struct {
	BootBlock  BootBlock `json:"BootBlock"`
	DiskNumber *int32    `json:"DiskNumber"`
	DiskItems  []Item    `json:"DiskItems"`
}

type BootBlock struct {
	FileName string `json:"FileName"`
}

type Item struct {
	FileName string `json:"FileName"`
	FileID   string `json:"FileID"`
}

// Parse decodes a JSON disk definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.WithStack(adf.InvalidFormat{Reason: "manifest: " + err.Error()})
	}

	for i, item := range def.DiskItems {
		if item.FileName == "" {
			return nil, errors.WithStack(adf.InvalidFormat{
				Reason: fmt.Sprintf("manifest: disk item %d has no FileName", i),
			})
		}
	}

	return &def, nil
}

// Load reads the definition configName in folder and every file it names.
func Load(folder, configName string, policy BootPolicy) (*adf.Manifest, error) {
	path := filepath.Join(folder, configName)
	data, err := readFile(path)
	if err != nil {
		return nil, errors.WithStack(SourceUnavailable{Path: path, Err: errors.Cause(err)})
	}

	def, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, configName)
	}

	return def.Manifest(folder, policy)
}

// Manifest reads the boot block and item files of d, relative to folder.
// Item files are read by loadWorkers goroutines. Once a read fails no
// further reads are started, and the earliest failing item in manifest
// order among those read is reported.
func (d *Definition) Manifest(folder string, policy BootPolicy) (*adf.Manifest, error) {
	m := &adf.Manifest{
		DiskNumber: defaultDiskNumber,
		Items:      make([]adf.Item, len(d.DiskItems)),
	}
	if d.DiskNumber != nil {
		m.DiskNumber = *d.DiskNumber
	}

	boot, err := policy.load(folder, d.BootBlock.FileName)
	if err != nil {
		return nil, err
	}
	m.Boot = boot

	errs := make([]error, len(d.DiskItems))
	jobs := make(chan int)
	failed := make(chan struct{})
	var once sync.Once
	var wg sync.WaitGroup

	workers := loadWorkers
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-failed:
					continue
				default:
				}
				item := d.DiskItems[i]
				data, err := readSource(folder, item.FileName)
				if err != nil {
					errs[i] = err
					once.Do(func() { close(failed) })
					continue
				}
				m.Items[i] = adf.Item{ID: item.FileID, Data: data}
			}
		}()
	}

feed:
	for i := range d.DiskItems {
		select {
		case <-failed:
			break feed
		default:
		}
		select {
		case jobs <- i:
		case <-failed:
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

func readSource(folder, name string) ([]byte, error) {
	path := filepath.Join(folder, name)
	data, err := readFile(path)
	if err != nil {
		return nil, errors.WithStack(SourceUnavailable{Path: path, Err: errors.Cause(err)})
	}
	return data, nil
}

// NormalizePath converts Windows style separators in a folder path to the
// separator of the host.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, string(os.PathSeparator))
}
