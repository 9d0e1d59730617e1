package sqlinline

const QInsertGeneration = `--sql 63c0d300-748d-4996-8d7b-2a360ae85bb2
insert into generations (id, module, input_json, output_text, is_favorite, country, created_at)
values ($1::uuid, $2::text, coalesce($3::jsonb, '{}'::jsonb), $4::text, false, nullif($5::text, ''), now())
returning created_at;
`

const QListGenerations = `--sql ed235214-3e61-41d9-a3a5-56c391b692cb
select id::text, module, input_json, output_text, is_favorite, coalesce(country, ''), created_at
from generations
where ($1::text = '' or module = $1::text)
  and ($2::text = '' or input_json::text ilike '%' || $2::text || '%' or output_text ilike '%' || $2::text || '%')
  and (not $3::boolean or is_favorite)
order by created_at desc
limit $4::int;
`

const QToggleGenerationFavorite = `--sql da429257-c781-42d4-8608-c514f7996311
update generations
set is_favorite = not is_favorite
where id = $1::uuid
returning id::text, module, input_json, output_text, is_favorite, coalesce(country, ''), created_at;
`

const QDeleteGeneration = `--sql f9698120-5ec9-419a-a567-49f142a4ed58
delete from generations
where id = $1::uuid;
`
