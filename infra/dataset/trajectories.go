package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/edgecharge/mcsd/core/model"
)

// LoadTrajectories reads one trajectory per CSV file found under root,
// sorted by file name. The vehicle id is the file name without extension.
// When regionIDs is non-empty and the file carries a region column, rows
// tagged with other regions are skipped.
func LoadTrajectories(root string, regionIDs []string) ([]model.Trajectory, error) {
	pattern := filepath.Join(root, "*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("dataset: glob trajectories: %w", err)
	}
	sort.Strings(files)

	var selected map[string]bool
	if len(regionIDs) > 0 {
		selected = make(map[string]bool, len(regionIDs))
		for _, id := range regionIDs {
			selected[id] = true
		}
	}

	trajectories := make([]model.Trajectory, 0, len(files))
	for _, file := range files {
		traj, err := loadTrajectoryFile(file, selected)
		if err != nil {
			return nil, err
		}
		trajectories = append(trajectories, traj)
	}
	return trajectories, nil
}

func loadTrajectoryFile(path string, selected map[string]bool) (model.Trajectory, error) {
	vehicleID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	traj := model.Trajectory{VehicleID: vehicleID}

	f, err := os.Open(path)
	if err != nil {
		return traj, fmt.Errorf("dataset: open trajectory: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return traj, nil
	}
	if err != nil {
		return traj, fmt.Errorf("dataset: trajectory %s header: %w", vehicleID, err)
	}
	tsCol := findColumn(header, "timestamp")
	lonCol := findColumn(header, "lon", "longitude")
	latCol := findColumn(header, "lat", "latitude")
	regionCol := findColumn(header, "region")
	if tsCol < 0 || lonCol < 0 || latCol < 0 {
		return traj, fmt.Errorf("dataset: trajectory %s needs timestamp, lon and lat columns", vehicleID)
	}

	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return traj, fmt.Errorf("dataset: trajectory %s line %d: %w", vehicleID, line, err)
		}
		if selected != nil && regionCol >= 0 && regionCol < len(rec) && !selected[rec[regionCol]] {
			continue
		}
		p, err := parsePoint(rec[lonCol], rec[latCol])
		if err != nil {
			return traj, fmt.Errorf("dataset: trajectory %s line %d: %w", vehicleID, line, err)
		}
		traj.Points = append(traj.Points, model.TrajectoryPoint{Timestamp: rec[tsCol], Point: p})
	}
	return traj, nil
}
