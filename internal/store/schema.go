package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS checks (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    checked_at       TEXT NOT NULL,
    month            TEXT NOT NULL,
    total            TEXT NOT NULL,
    target           TEXT NOT NULL,
    expected         TEXT NOT NULL,
    actual           TEXT NOT NULL,
    classification   TEXT NOT NULL,
    pace_source      TEXT NOT NULL,
    status           TEXT NOT NULL,
    new_transactions INTEGER NOT NULL,
    should_alert     INTEGER NOT NULL,
    reasons          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checks_checked ON checks(checked_at);
CREATE INDEX IF NOT EXISTS idx_checks_month ON checks(month);
`
