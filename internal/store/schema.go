package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS dataset_meta (
    source_path    TEXT PRIMARY KEY,
    mtime_ns       INTEGER NOT NULL,
    size_bytes     INTEGER NOT NULL,
    synonyms_fp    TEXT NOT NULL DEFAULT '',
    cell_errors    INTEGER NOT NULL DEFAULT 0,
    features       TEXT NOT NULL,
    prepared_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
    source_path          TEXT NOT NULL,
    idx                  INTEGER NOT NULL,
    ts                   TEXT,
    faculty              TEXT,
    program              TEXT,
    allowance            REAL,
    fomo_spend           REAL,
    finance_skill        REAL,
    fomo_spend_freq      REAL,
    fomo_activity_freq   REAL,
    emotion_impact       REAL,
    finance_stress_freq  REAL,
    motivation_loss_freq REAL,
    fomo_stress_freq     REAL,
    feels_fomo_often     TEXT,
    psych_score          REAL,
    support_need         TEXT,
    support_score        REAL,
    day_of_week          TEXT,
    hour_of_day          INTEGER,
    week_bucket          TEXT,
    expense_ratio        REAL,
    remaining_allowance  REAL,
    ratio_bucket         TEXT,
    finance_bucket       TEXT,
    fomo_category        TEXT,
    relative_fomo        REAL,
    stress_index         REAL,
    PRIMARY KEY (source_path, idx)
);
`
