package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (id, title, slug, type, status, address, district, city, lat, lng,
   description, is_active, display_order, image_url, image_asset_id, image_alt)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title          = VALUES(title),
  slug           = VALUES(slug),
  type           = VALUES(type),
  status         = VALUES(status),
  address        = VALUES(address),
  district       = VALUES(district),
  city           = VALUES(city),
  lat            = VALUES(lat),
  lng            = VALUES(lng),
  description    = VALUES(description),
  is_active      = VALUES(is_active),
  display_order  = VALUES(display_order),
  image_url      = VALUES(image_url),
  image_asset_id = VALUES(image_asset_id),
  image_alt      = VALUES(image_alt),
  updated_at     = CURRENT_TIMESTAMP
`

const selectSlugOwnerSQL = `SELECT id FROM properties WHERE slug = ? FOR UPDATE`

// Shared SELECT column list; list/get queries append WHERE/ORDER/LIMIT.
const selectPropertySQL = `
SELECT
  id, title, slug, type, status, address, district, city,
  lat, lng, description, is_active, display_order,
  image_url, image_asset_id, image_alt, created_at, updated_at
FROM properties
`

const countPropertiesSQL = `SELECT COUNT(*) FROM properties`

const listAssetsSQL = `
SELECT id, asset_id, url, alt, kind, mime, is_cover, display_order
FROM property_assets
WHERE property_id = ?
ORDER BY display_order
`

const deleteAssetsSQL = `DELETE FROM property_assets WHERE property_id = ?`

const insertAssetsPrefix = "INSERT INTO property_assets\n" +
	"  (id, property_id, asset_id, url, alt, kind, mime, is_cover, display_order)\nVALUES "

const updateMirrorSQL = `
UPDATE properties
SET image_url = ?, image_asset_id = ?, image_alt = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deletePropertySQL = `DELETE FROM properties WHERE id = ?`
