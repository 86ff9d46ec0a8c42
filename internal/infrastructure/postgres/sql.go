package postgres

const eventColumns = `
e.id, e.organizer_id, e.title, e.description, e.start_datetime, e.end_datetime,
e.location, e.category_id, c.name, e.tags, e.capacity, e.seats_left,
e.poster_key, e.featured, e.created_at`

const selectEventSQL = `
SELECT ` + eventColumns + `
FROM events e
LEFT JOIN categories c ON c.id = e.category_id
WHERE e.id = $1
`

const insertEventSQL = `
INSERT INTO events (
  id, organizer_id, title, description, start_datetime, end_datetime,
  location, category_id, tags, capacity, seats_left, featured, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`

const updateEventSQL = `
UPDATE events SET
  title=$2, description=$3, start_datetime=$4, end_datetime=$5,
  location=$6, category_id=$7, tags=$8, capacity=$9,
  seats_left = LEAST(GREATEST(seats_left + $10, 0), $9), featured=$11
WHERE id=$1
RETURNING seats_left
`

const updateEventPosterSQL = `UPDATE events SET poster_key=$2 WHERE id=$1`

const deleteEventSQL = `DELETE FROM events WHERE id=$1`

const lockEventSQL = `
SELECT organizer_id, seats_left FROM events WHERE id = $1 FOR UPDATE
`

const decrementSeatsSQL = `
UPDATE events SET seats_left = seats_left - 1 WHERE id = $1
`

const ticketColumns = `
t.id, t.event_id, t.attendee_id, t.status, t.qr_key, t.created_at, t.scanned_at`

const selectTicketForPairSQL = `
SELECT ` + ticketColumns + `
FROM tickets t
WHERE t.event_id = $1 AND t.attendee_id = $2
`

const insertTicketSQL = `
INSERT INTO tickets (id, event_id, attendee_id, status, created_at)
VALUES ($1,$2,$3,$4,$5)
`

const setTicketQRKeySQL = `UPDATE tickets SET qr_key=$2 WHERE id=$1`

const insertRegistrationSQL = `
INSERT INTO event_users (id, event_id, user_id, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (event_id, user_id) DO NOTHING
`

const selectTicketSQL = `
SELECT ` + ticketColumns + `
FROM tickets t
WHERE t.id = $1
`

const markTicketUsedSQL = `
UPDATE tickets SET status=$2, scanned_at=$3 WHERE id=$1
`

const insertLikeSQL = `
INSERT INTO event_likes (id, event_id, user_id, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (event_id, user_id) DO NOTHING
`

const deleteLikeSQL = `
DELETE FROM event_likes WHERE event_id = $1 AND user_id = $2
`
