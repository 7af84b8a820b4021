package repository

const ListEmployeesSQL = `
SELECT id, name, daily_rate, advances, created_at
FROM employees
ORDER BY created_at, id;
`

const GetEmployeeSQL = `
SELECT id, name, daily_rate, advances, created_at
FROM employees
WHERE id = $1;
`

const InsertEmployeeSQL = `
INSERT INTO employees (id, name, daily_rate, advances, created_at)
VALUES ($1, $2, $3, $4, $5);
`

const UpdateEmployeeSQL = `
UPDATE employees
SET name = $2, daily_rate = $3, advances = $4
WHERE id = $1;
`

const DeleteEmployeeSQL = `DELETE FROM employees WHERE id = $1;`

const ListClientsSQL = `
SELECT id, name, location, created_at
FROM clients
ORDER BY created_at, id;
`

const GetClientSQL = `
SELECT id, name, location, created_at
FROM clients
WHERE id = $1;
`

const InsertClientSQL = `
INSERT INTO clients (id, name, location, created_at)
VALUES ($1, $2, $3, $4);
`

const UpdateClientSQL = `
UPDATE clients
SET name = $2, location = $3
WHERE id = $1;
`

const DeleteClientSQL = `DELETE FROM clients WHERE id = $1;`

const workRecordColumns = `
    id,
    employee_id,
    to_char(work_date, 'YYYY-MM-DD') AS work_date,
    client_ids,
    client_hours,
    client_shifts,
    is_absence,
    daily_advance,
    created_at
`

const ListWorkRecordsSQL = `
SELECT` + workRecordColumns + `
FROM work_records
ORDER BY work_date, created_at;
`

const GetWorkRecordSQL = `
SELECT` + workRecordColumns + `
FROM work_records
WHERE id = $1;
`

const WorkRecordsByEmployeeSQL = `
SELECT` + workRecordColumns + `
FROM work_records
WHERE employee_id = $1
ORDER BY work_date;
`

const WorkRecordsByDateRangeSQL = `
SELECT` + workRecordColumns + `
FROM work_records
WHERE
    employee_id = $1
    AND work_date >= $2::date
    AND work_date <= $3::date
ORDER BY work_date;
`

const InsertWorkRecordSQL = `
INSERT INTO work_records (
    id, employee_id, work_date, client_ids, client_hours, client_shifts, is_absence, daily_advance, created_at
)
VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9);
`

const UpdateWorkRecordSQL = `
UPDATE work_records
SET
    employee_id = $2,
    work_date = $3::date,
    client_ids = $4,
    client_hours = $5,
    client_shifts = $6,
    is_absence = $7,
    daily_advance = $8
WHERE id = $1;
`

const DeleteWorkRecordSQL = `DELETE FROM work_records WHERE id = $1;`

const GetSettingsSQL = `SELECT language, theme FROM app_settings WHERE id = 1;`

const UpsertSettingsSQL = `
INSERT INTO app_settings (id, language, theme)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET language = EXCLUDED.language, theme = EXCLUDED.theme;
`
