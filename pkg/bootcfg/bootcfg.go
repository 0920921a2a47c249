// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package bootcfg renders the boot-loader script that chain-loads arbitrary
// ISO images from the data volume.
//
// Each menu entry probes the loop-mounted image for known layouts at boot
// time, in order: an embedded boot-loader config file, a Debian-derived live
// kernel, a generic live-CD kernel. This keeps the generator free of any
// per-distribution registry.
package bootcfg

import (
	"bytes"
	"strings"
	"text/template"
)

// MenuTimeoutSeconds is the boot menu timeout.
const MenuTimeoutSeconds = 5

// ISODir is the conventional ISO directory on the data volume.
const ISODir = "/boot/isos"

// Entry is one selectable menu item referencing one ISO image.
type Entry struct {
	Title  string `json:"title"`
	Path   string `json:"path"`
	Params string `json:"params"`
	Initrd string `json:"initrd"`
	KArgs  string `json:"kargs"`
}

// Config is the full menu description. The entry order determines the
// on-screen menu order. The generator never mutates it.
type Config struct {
	DefaultEntry string  `json:"default_entry,omitempty"`
	Entries      []Entry `json:"entries"`
}

const scriptTpl = `set timeout={{ .Timeout }}
{{ with .Default }}set default="{{ . }}"
{{ end }}insmod part_gpt
insmod fat
insmod exfat
insmod iso9660
insmod loopback
insmod search
search --no-floppy --label {{ .DataLabel }} --set=root
set isopath={{ .ISODir }}
export root
export isopath
{{ range .Entries }}menuentry "{{ .Title }}" {
  set isofile="($root){{ .Path }}"
  loopback loop $isofile
  if [ -f (loop)/boot/grub/grub.cfg ]; then
    configfile (loop)/boot/grub/grub.cfg
  elif [ -f (loop)/casper/vmlinuz ]; then
    linux (loop)/casper/vmlinuz {{ .Params }} {{ .KArgs }} iso-scan/filename=$isofile
    initrd {{ .CasperInitrd }}
  elif [ -f (loop)/live/vmlinuz ]; then
    linux (loop)/live/vmlinuz {{ .Params }} {{ .KArgs }} boot=live findiso=$isofile
    initrd {{ .LiveInitrd }}
  else
    echo "No known kernel path found in ISO."
  fi
}
{{ end }}`

var scriptTemplate = template.Must(template.New("bootscript").Parse(scriptTpl))

// scriptView is the fully sanitized data handed to the template. Every
// user-controlled field is sanitized individually before it gets here, so
// later concatenation cannot reintroduce disallowed characters.
type scriptView struct {
	Timeout   int
	Default   string
	DataLabel string
	ISODir    string
	Entries   []entryView
}

type entryView struct {
	Title        string
	Path         string
	Params       string
	KArgs        string
	CasperInitrd string
	LiveInitrd   string
}

// Render produces the boot-loader script for the menu described by config,
// resolving the boot volume by the given data partition label.
func Render(config *Config, dataLabel string) (string, error) {
	view := scriptView{
		Timeout:   MenuTimeoutSeconds,
		Default:   Sanitize(config.DefaultEntry),
		DataLabel: Sanitize(dataLabel),
		ISODir:    ISODir,
		Entries:   make([]entryView, 0, len(config.Entries)),
	}

	for _, entry := range config.Entries {
		initrd := Sanitize(entry.Initrd)

		casperInitrd := "(loop)/casper/initrd"
		liveInitrd := "(loop)/live/initrd.img"

		if initrd != "" {
			casperInitrd = initrd
			liveInitrd = initrd
		}

		view.Entries = append(view.Entries, entryView{
			Title:        Sanitize(entry.Title),
			Path:         AbsPath(Sanitize(entry.Path)),
			Params:       Sanitize(entry.Params),
			KArgs:        Sanitize(entry.KArgs),
			CasperInitrd: casperInitrd,
			LiveInitrd:   liveInitrd,
		})
	}

	var buf bytes.Buffer

	if err := scriptTemplate.Execute(&buf, view); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Sanitize strips double quotes, collapses line breaks to a single space and
// trims surrounding whitespace, so user input cannot break out of the
// script's quoting or inject new statements.
func Sanitize(input string) string {
	out := strings.ReplaceAll(input, `"`, "")
	out = strings.ReplaceAll(out, "\r\n", " ")
	out = strings.ReplaceAll(out, "\n", " ")
	out = strings.ReplaceAll(out, "\r", " ")

	return strings.TrimSpace(out)
}

// AbsPath makes the ISO path absolute within the search-resolved volume.
func AbsPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}

	return "/" + path
}
