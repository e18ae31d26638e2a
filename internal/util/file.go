package util

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// ComicInfo is the subset of the ComicRack metadata schema that readers use
// to title and tag an archive.
type ComicInfo struct {
	XMLName     xml.Name `xml:"ComicInfo"`
	Title       string   `xml:"Title,omitempty"`
	Series      string   `xml:"Series,omitempty"`
	Number      string   `xml:"Number,omitempty"`
	Writer      string   `xml:"Writer,omitempty"`
	Tags        string   `xml:"Tags,omitempty"`
	Web         string   `xml:"Web,omitempty"`
	PageCount   int      `xml:"PageCount,omitempty"`
	LanguageISO string   `xml:"LanguageISO,omitempty"`
	Manga       string   `xml:"Manga,omitempty"`
}

const comicInfoName = "ComicInfo.xml"

// CreateCBZ zips files, sorted by name, into output. A non-nil info is
// written as ComicInfo.xml ahead of the pages.
func CreateCBZ(files []string, output string, info *ComicInfo) error {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing output file %s: %v", output, cerr)
		}
	}()

	z := zip.NewWriter(out)
	defer func() {
		if cerr := z.Close(); cerr != nil {
			log.Printf("error closing zip writer for %s: %v", output, cerr)
		}
	}()

	if info != nil {
		if err := addComicInfo(z, info); err != nil {
			return err
		}
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, file := range sorted {
		if err := addFileToZip(z, file); err != nil {
			return err
		}
	}

	return nil
}

func addComicInfo(z *zip.Writer, info *ComicInfo) error {
	body, err := xml.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("comic info: %w", err)
	}

	w, err := z.Create(comicInfoName)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", file, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(file)
	header.Method = zip.Deflate

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
