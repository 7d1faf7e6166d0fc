package roster

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// AgeByUIDPath returns the roster filename for the uid→age table.
func AgeByUIDPath(dir, location string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d_age_by_uid.dat", location, n))
}

// GroupPaths returns the aligned ages/uids filenames for one group type.
func GroupPaths(dir, location string, n int, groupType string) (agesPath, uidsPath string) {
	agesPath = filepath.Join(dir, fmt.Sprintf("%s_%d_synthetic_%s_with_ages.dat", location, n, groupType))
	uidsPath = filepath.Join(dir, fmt.Sprintf("%s_%d_synthetic_%s_with_uids.dat", location, n, groupType))
	return agesPath, uidsPath
}

// WriteAgeByUID writes the uid→age table, one "uid age" line per person,
// sorted by uid.
func WriteAgeByUID(dir, location string, ageByUID map[string]int) error {
	path := AgeByUIDPath(dir, location, len(ageByUID))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	uids := make([]string, 0, len(ageByUID))
	for uid := range ageByUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	w := bufio.NewWriter(f)
	for _, uid := range uids {
		fmt.Fprintf(w, "%s %d\n", uid, ageByUID[uid])
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadAgeByUID reads a table written by WriteAgeByUID.
func ReadAgeByUID(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ageByUID := make(map[string]int)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s: bad line %q", path, sc.Text())
		}
		age, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad age in %q: %w", path, sc.Text(), err)
		}
		ageByUID[fields[0]] = age
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ageByUID, nil
}

// WriteGroups writes one group type as two aligned plain-text tables: one
// line per group, whitespace-separated member ages in one file and member
// uids in the other, same order in both.
func WriteGroups(dir, location string, n int, groupType string, groups [][]string, ageByUID map[string]int) error {
	agesPath, uidsPath := GroupPaths(dir, location, n, groupType)

	fAges, err := os.Create(agesPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", agesPath, err)
	}
	defer fAges.Close()
	fUIDs, err := os.Create(uidsPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", uidsPath, err)
	}
	defer fUIDs.Close()

	wAges := bufio.NewWriter(fAges)
	wUIDs := bufio.NewWriter(fUIDs)
	for _, group := range groups {
		ages := make([]string, 0, len(group))
		for _, uid := range group {
			age, ok := ageByUID[uid]
			if !ok {
				return fmt.Errorf("group type %s: unknown uid %s", groupType, uid)
			}
			ages = append(ages, strconv.Itoa(age))
		}
		fmt.Fprintln(wAges, strings.Join(ages, " "))
		fmt.Fprintln(wUIDs, strings.Join(group, " "))
	}
	if err := wAges.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", agesPath, err)
	}
	if err := wUIDs.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", uidsPath, err)
	}
	if err := fAges.Close(); err != nil {
		return err
	}
	return fUIDs.Close()
}

// ReadGroups reads the aligned tables back, returning per-group uids and
// ages. Line counts and per-line member counts must match between files.
func ReadGroups(agesPath, uidsPath string) (groups [][]string, ages [][]int, err error) {
	uidLines, err := readLines(uidsPath)
	if err != nil {
		return nil, nil, err
	}
	ageLines, err := readLines(agesPath)
	if err != nil {
		return nil, nil, err
	}
	if len(uidLines) != len(ageLines) {
		return nil, nil, fmt.Errorf("%s and %s disagree: %d vs %d groups",
			uidsPath, agesPath, len(uidLines), len(ageLines))
	}

	for i := range uidLines {
		uids := strings.Fields(uidLines[i])
		ageFields := strings.Fields(ageLines[i])
		if len(uids) != len(ageFields) {
			return nil, nil, fmt.Errorf("group %d: %d uids vs %d ages", i, len(uids), len(ageFields))
		}
		groupAges := make([]int, 0, len(ageFields))
		for _, s := range ageFields {
			a, err := strconv.Atoi(s)
			if err != nil {
				return nil, nil, fmt.Errorf("group %d: bad age %q: %w", i, s, err)
			}
			groupAges = append(groupAges, a)
		}
		groups = append(groups, uids)
		ages = append(ages, groupAges)
	}
	return groups, ages, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
