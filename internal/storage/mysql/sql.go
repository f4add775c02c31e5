package mysql

const deleteCityUnitsSQL = `DELETE FROM units WHERE city = ?`

const insertUnitsPrefix = "INSERT INTO units\n  (city, position, title, bedrooms, guests, price_per_night, highlights)\nVALUES "

const insertUnitsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  title           = VALUES(title),\n" +
	"  bedrooms        = VALUES(bedrooms),\n" +
	"  guests          = VALUES(guests),\n" +
	"  price_per_night = VALUES(price_per_night),\n" +
	"  highlights      = VALUES(highlights)\n"

const upsertLocationSQL = `
INSERT INTO locations (city, doc)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  doc        = VALUES(doc),
  updated_at = CURRENT_TIMESTAMP
`

const deleteCityMediaSQL = `DELETE FROM city_media WHERE city = ?`

const insertMediaPrefix = "INSERT INTO city_media (city, position, media_type, src)\nVALUES "

const insertMissSQL = `
INSERT INTO seed_misses (city, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listUnitsSQL = `
SELECT city, title, bedrooms, guests, price_per_night, highlights
FROM units
ORDER BY city, position
`

const listLocationsSQL = `SELECT doc FROM locations ORDER BY city`

// Case-insensitive under the default utf8mb4 collation.
const listMediaSQL = `
SELECT media_type, src
FROM city_media
WHERE city = ?
ORDER BY position
`

// -----------------------------------------------------------------------------
// LOCAL STORAGE
// -----------------------------------------------------------------------------

const getItemSQL = `SELECT item_value FROM local_storage WHERE client_id = ? AND item_key = ?`

const setItemSQL = `
INSERT INTO local_storage (client_id, item_key, item_value)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE item_value = VALUES(item_value)
`

const removeItemSQL = `DELETE FROM local_storage WHERE client_id = ? AND item_key = ?`
