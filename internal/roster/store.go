package roster

import (
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/synthnet/internal/contacts"
)

// Store wraps a SQLite connection holding a generated population.
type Store struct {
	conn *sqlx.DB
}

// OpenStore opens or creates a SQLite database at the given path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		uid TEXT PRIMARY KEY,
		age INTEGER NOT NULL,
		sex INTEGER NOT NULL,
		facility_resident INTEGER NOT NULL,
		facility_staff INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS group_members (
		group_type TEXT NOT NULL,
		group_idx INTEGER NOT NULL,
		member_idx INTEGER NOT NULL,
		uid TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_group_members_type ON group_members(group_type, group_idx);
	CREATE INDEX IF NOT EXISTS idx_persons_age ON persons(age);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SavePopulation writes all person records (full replace).
func (s *Store) SavePopulation(pop map[string]*contacts.Person) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM persons"); err != nil {
		return err
	}

	uids := make([]string, 0, len(pop))
	for uid := range pop {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	stmt, err := tx.Prepare(`INSERT INTO persons
		(uid, age, sex, facility_resident, facility_staff)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, uid := range uids {
		p := pop[uid]
		if _, err := stmt.Exec(p.UID, p.Age, p.Sex, boolInt(p.FacilityResident), boolInt(p.FacilityStaff)); err != nil {
			return fmt.Errorf("insert person %s: %w", uid, err)
		}
	}
	return tx.Commit()
}

// SaveGroups writes one group type's membership rows (full replace for that
// type).
func (s *Store) SaveGroups(groupType string, groups [][]string) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM group_members WHERE group_type = ?", groupType); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO group_members
		(group_type, group_idx, member_idx, uid) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for gi, group := range groups {
		for mi, uid := range group {
			if _, err := stmt.Exec(groupType, gi, mi, uid); err != nil {
				return fmt.Errorf("insert %s group %d member %d: %w", groupType, gi, mi, err)
			}
		}
	}
	return tx.Commit()
}

// CountPersons returns the number of stored person records.
func (s *Store) CountPersons() (int, error) {
	var n int
	if err := s.conn.Get(&n, "SELECT COUNT(*) FROM persons"); err != nil {
		return 0, err
	}
	return n, nil
}

// LoadGroups reads one group type's membership back, grouped and ordered.
func (s *Store) LoadGroups(groupType string) ([][]string, error) {
	rows, err := s.conn.Query(`SELECT group_idx, uid FROM group_members
		WHERE group_type = ? ORDER BY group_idx, member_idx`, groupType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups [][]string
	for rows.Next() {
		var gi int
		var uid string
		if err := rows.Scan(&gi, &uid); err != nil {
			return nil, err
		}
		for len(groups) <= gi {
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], uid)
	}
	return groups, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
