package storage

const schema = `
-- Each row is one full JSON document: the root index/stats record under a
-- fixed ID, and one record per deck keyed by deck ID.
CREATE TABLE IF NOT EXISTS records (
    id   TEXT PRIMARY KEY,
    body TEXT NOT NULL
);
`
