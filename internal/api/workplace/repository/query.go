package workplaceRepository

const (
	queryCreateWorkplace = `
INSERT INTO workplaces (id, owner_id, name, is_active, created_at)
VALUES (:id, :owner_id, :name, :is_active, :created_at)`

	queryGetWorkplaceByID = `
SELECT id, owner_id, name, is_active, created_at
FROM workplaces
    WHERE id = :id AND owner_id = :owner_id`

	queryListActiveWorkplaces = `
SELECT id, owner_id, name, is_active, created_at
FROM workplaces
    WHERE owner_id = :owner_id AND is_active = TRUE
ORDER BY created_at ASC, id ASC`

	queryActiveNameExists = `
SELECT EXISTS (
    SELECT 1 FROM workplaces
    WHERE owner_id = :owner_id AND name = :name AND is_active = TRUE
)`

	queryDeactivateWorkplace = `
UPDATE workplaces
SET is_active = FALSE
WHERE id = :id AND owner_id = :owner_id AND is_active = TRUE`
)
