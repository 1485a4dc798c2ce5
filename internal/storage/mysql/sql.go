package mysql

// Multi-row insert; the repo appends one placeholder group per offer.
const insertSnapshotsPrefix = "INSERT INTO offer_snapshots\n" +
	"  (title, store_name, kind, price, price_label, retail_price, savings_percent, currency, url, captured_at)\nVALUES "

const snapshotPlaceholders = "(?,?,?,?,?,?,?,?,?,?)"

const insertMissSQL = `
INSERT INTO watch_misses (title, reason)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  reason  = VALUES(reason),
  hits    = watch_misses.hits + 1,
  seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Newest first; served by idx_snapshots_title_time.
const listSnapshotsSQL = `
SELECT
  id,
  title,
  store_name,
  kind,
  price,
  price_label,
  retail_price,
  savings_percent,
  currency,
  url,
  captured_at
FROM offer_snapshots
WHERE title = ?
ORDER BY captured_at DESC, id DESC
LIMIT ?
`

const countMissSQL = `SELECT hits FROM watch_misses WHERE title = ?`
