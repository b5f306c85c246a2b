package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Uniqueness Ledger
-- One row per issued card identity, ever. The primary key on the
-- normalized identity is the scarcity guarantee: concurrent issuers race
-- on the insert and exactly one wins.
CREATE TABLE IF NOT EXISTS ledger (
    item_identity VARCHAR(120) PRIMARY KEY,
    owner_id VARCHAR(120) NOT NULL,
    rarity_tier INTEGER NOT NULL,
    issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ledger_owner ON ledger (owner_id);

-- On-chain pack purchases (reconciliation records)
CREATE TABLE IF NOT EXISTS purchases (
    purchase_id BIGSERIAL PRIMARY KEY,
    network_id BIGINT NOT NULL,
    contract_address VARCHAR(80) NOT NULL,
    external_pack_id BIGINT NOT NULL,
    buyer_address VARCHAR(80) NOT NULL,
    user_id VARCHAR(120),
    status VARCHAR(20) NOT NULL DEFAULT 'purchased',
    tx_ref VARCHAR(120) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    fulfilled_at TIMESTAMPTZ,
    UNIQUE (network_id, contract_address, external_pack_id)
);

CREATE INDEX IF NOT EXISTS idx_purchases_buyer ON purchases (buyer_address, created_at DESC);

-- Cards issued per fulfilled purchase
CREATE TABLE IF NOT EXISTS purchase_items (
    purchase_item_id BIGSERIAL PRIMARY KEY,
    purchase_id BIGINT NOT NULL REFERENCES purchases(purchase_id) ON DELETE CASCADE,
    token_ref VARCHAR(120) NOT NULL,
    item_identity VARCHAR(120) NOT NULL,
    rarity_tier INTEGER NOT NULL,
    role VARCHAR(10) NOT NULL,
    mint_tx_ref VARCHAR(120) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase ON purchase_items (purchase_id);

-- Fulfillment listener read position, one row per (network, contract)
CREATE TABLE IF NOT EXISTS sync_cursor (
    network_id BIGINT NOT NULL,
    contract_address VARCHAR(80) NOT NULL,
    last_processed_position BIGINT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (network_id, contract_address)
);

-- Buyer address to local user mapping
CREATE TABLE IF NOT EXISTS wallet_links (
    wallet_address VARCHAR(80) PRIMARY KEY,
    user_id VARCHAR(120) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
