// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package blockdev discovers block devices and their partitions using the
// system block-device query tool as the sole source of truth.
package blockdev

import (
	"encoding/json"
	"strconv"

	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// Disk describes one whole block device. Disks are reconstructed fresh on
// every query and are immutable once returned.
type Disk struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	SizeBytes   uint64   `json:"size_bytes"`
	Removable   bool     `json:"removable"`
	Mountpoints []string `json:"mountpoints"`
	IsSystem    bool     `json:"is_system"`
}

// Partition describes one partition of a disk.
type Partition struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	FSType      string   `json:"fstype"`
	Mountpoints []string `json:"mountpoints"`
}

// System mountpoints: a disk carrying any of these is never a valid install
// target.
var systemMountpoints = map[string]struct{}{
	"/":         {},
	"/boot":     {},
	"/boot/efi": {},
}

// byteSize decodes the lsblk SIZE column, which is a JSON number on recent
// util-linux and a quoted string on older releases. Unparseable values decode
// to zero: partial information is preferred over failing a read-only listing.
type byteSize uint64

func (s *byteSize) UnmarshalJSON(data []byte) error {
	text := string(data)

	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		value = 0
	}

	*s = byteSize(value)

	return nil
}

// device is one node of the lsblk device tree.
type device struct {
	Name        string    `json:"name"`
	Model       *string   `json:"model"`
	Size        byteSize  `json:"size"`
	Removable   bool      `json:"rm"`
	Type        string    `json:"type"`
	Mountpoints []*string `json:"mountpoints"`
	Label       *string   `json:"label"`
	FSType      *string   `json:"fstype"`
	ParentName  *string   `json:"pkname"`
	Children    []device  `json:"children"`
}

// output is the top-level lsblk document.
type output struct {
	BlockDevices []device `json:"blockdevices"`
}

// collectMounts gathers the non-empty mountpoints of a device and all its
// descendants, in tree order.
func (d *device) collectMounts(mounts []string) []string {
	for _, mp := range d.Mountpoints {
		if mp != nil && *mp != "" {
			mounts = append(mounts, *mp)
		}
	}

	for i := range d.Children {
		mounts = d.Children[i].collectMounts(mounts)
	}

	return mounts
}

// parseDisks converts the raw query tool document into the flat disk list.
func parseDisks(raw []byte) ([]Disk, error) {
	var parsed output

	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, xerrors.Parse("decoding block device list: %v", err)
	}

	var disks []Disk

	for i := range parsed.BlockDevices {
		dev := &parsed.BlockDevices[i]

		if dev.Type != "disk" {
			continue
		}

		mounts := dev.collectMounts(nil)

		disks = append(disks, Disk{
			ID:          "/dev/" + dev.Name,
			Model:       stringOr(dev.Model, "Unknown"),
			SizeBytes:   uint64(dev.Size),
			Removable:   dev.Removable,
			Mountpoints: mounts,
			IsSystem:    isSystem(mounts),
		})
	}

	return disks, nil
}

// parsePartitions converts the raw query tool document into the partitions
// belonging to the named disk, wherever in the tree they occur.
func parsePartitions(raw []byte, diskName string) ([]Partition, error) {
	var parsed output

	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, xerrors.Parse("decoding block device list: %v", err)
	}

	var parts []Partition

	var walk func(devs []device)

	walk = func(devs []device) {
		for i := range devs {
			dev := &devs[i]

			if dev.Type == "part" && stringOr(dev.ParentName, "") == diskName {
				parts = append(parts, Partition{
					ID:          "/dev/" + dev.Name,
					Label:       stringOr(dev.Label, ""),
					FSType:      stringOr(dev.FSType, ""),
					Mountpoints: dev.collectMounts(nil),
				})
			}

			walk(dev.Children)
		}
	}

	walk(parsed.BlockDevices)

	return parts, nil
}

// FindDisk returns the disk with the given device path, or nil if the current
// inventory has no such disk.
func FindDisk(disks []Disk, diskID string) *Disk {
	for i := range disks {
		if disks[i].ID == diskID {
			return &disks[i]
		}
	}

	return nil
}

func isSystem(mounts []string) bool {
	for _, mp := range mounts {
		if _, ok := systemMountpoints[mp]; ok {
			return true
		}
	}

	return false
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}

	return *s
}
