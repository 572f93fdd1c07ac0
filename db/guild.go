package db

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
	"github.com/starshine-sys/sentinel/guildconfig"
)

var _ guildconfig.Backend = (*DB)(nil)

type guildRow struct {
	ID int64 `db:"id"`

	Prefix     *string `db:"prefix"`
	ModRoles   *string `db:"mod_roles"`
	AdminRoles *string `db:"admin_roles"`

	MemberJoinsChannel  *int64 `db:"member_joins_channel"`
	MemberLeavesChannel *int64 `db:"member_leaves_channel"`
	LogsChannel         *int64 `db:"logs_channel"`

	AutoMod int `db:"auto_mod"`
}

func (r guildRow) config() (c guildconfig.Config, err error) {
	c.GuildID = discord.GuildID(r.ID)
	if r.Prefix != nil {
		c.Prefix = *r.Prefix
	}

	c.ModRoles, err = guildconfig.DecodeRoles(r.ModRoles)
	if err != nil {
		return c, errors.Wrap(err, "mod roles")
	}
	c.AdminRoles, err = guildconfig.DecodeRoles(r.AdminRoles)
	if err != nil {
		return c, errors.Wrap(err, "admin roles")
	}

	c.MemberJoinsChannel = channelID(r.MemberJoinsChannel)
	c.MemberLeavesChannel = channelID(r.MemberLeavesChannel)
	c.LogsChannel = channelID(r.LogsChannel)
	c.AutoMod = r.AutoMod != 0
	return c, nil
}

func channelID(i *int64) discord.ChannelID {
	if i == nil {
		return 0
	}
	return discord.ChannelID(*i)
}

// GuildConfig returns the stored config for the guild, or guildconfig.ErrNotFound.
func (db *DB) GuildConfig(ctx context.Context, id discord.GuildID) (c guildconfig.Config, err error) {
	sql, args, err := sq.Select("*").From("guilds").Where("id = ?", id).ToSql()
	if err != nil {
		return c, errors.Wrap(err, "building sql")
	}

	db.Stats.IncQuery()

	var row guildRow
	err = pgxscan.Get(ctx, db, &row, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, guildconfig.ErrNotFound
		}
		return c, errors.Wrap(err, "executing query")
	}

	return row.config()
}

// CreateGuildConfig inserts a default row for the guild.
func (db *DB) CreateGuildConfig(ctx context.Context, id discord.GuildID) (created bool, err error) {
	sql, args, err := sq.Insert("guilds").
		Columns("id").
		Values(id).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "building sql")
	}

	db.Stats.IncQuery()

	ct, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrap(err, "executing query")
	}

	return ct.RowsAffected() != 0, nil
}

// UpdateGuildConfig writes the given columns in a single statement.
func (db *DB) UpdateGuildConfig(ctx context.Context, id discord.GuildID, cols guildconfig.Columns) error {
	if len(cols) == 0 {
		return nil
	}

	m := make(map[string]interface{}, len(cols))
	for k, v := range cols {
		m[string(k)] = v
	}

	sql, args, err := sq.Update("guilds").SetMap(m).Where("id = ?", id).ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	db.Stats.IncQuery()

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	return nil
}
